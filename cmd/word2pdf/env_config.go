package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-word2pdf/internal/config"
)

// dotEnvFile is loaded from the working directory before reading variables.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string        // WORD2PDF_CONFIG: config file name or path for run
	Engine     string        // WORD2PDF_ENGINE: office, word
	Soffice    string        // WORD2PDF_SOFFICE: LibreOffice binary
	Timeout    time.Duration // WORD2PDF_TIMEOUT: per-document timeout
	LockFile   string        // WORD2PDF_LOCK_FILE: engine lock path
	LogLevel   string        // WORD2PDF_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid WORD2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WORD2PDF_CONFIG":    true,
	"WORD2PDF_ENGINE":    true,
	"WORD2PDF_SOFFICE":   true,
	"WORD2PDF_TIMEOUT":   true,
	"WORD2PDF_LOCK_FILE": true,
	"WORD2PDF_LOG_LEVEL": true,
	"WORD2PDF_CONTAINER": true,
}

// loadDotEnv reads .env into the process environment.
// Variables that are already set win over the file.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidFlag, path, err)
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized WORD2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("WORD2PDF_CONFIG"),
		Engine:     os.Getenv("WORD2PDF_ENGINE"),
		Soffice:    os.Getenv("WORD2PDF_SOFFICE"),
		LockFile:   os.Getenv("WORD2PDF_LOCK_FILE"),
		LogLevel:   os.Getenv("WORD2PDF_LOG_LEVEL"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("WORD2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WORD2PDF_* variables.
// Helps catch typos like WORD2PDF_ENGIN instead of WORD2PDF_ENGINE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WORD2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" && cfg.Engine == "" {
		cfg.Engine = env.Engine
	}
	if env.Soffice != "" && cfg.OfficeBinary == "" {
		cfg.OfficeBinary = env.Soffice
	}
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}
	if env.LockFile != "" && cfg.LockFile == "" {
		cfg.LockFile = env.LockFile
	}
}
