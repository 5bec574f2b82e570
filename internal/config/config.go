package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrMissingField    = errors.New("required config field missing")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config file looked up when none is given.
const DefaultName = "config.json"

// appDir is the per-user config directory name under os.UserConfigDir.
const appDir = "go-word2pdf"

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxEngineLength = 20   // "office", "word"
)

// extensions are tried in order when a config name has none.
var extensions = []string{".json", ".yaml", ".yml"}

// Known engine names, kept in sync with the word2pdf package.
var engines = []string{"", "office", "libreoffice", "soffice", "word", "msword"}

// Config holds the settings of a config-driven run.
// Files are JSON or YAML; both decode with the same field names.
type Config struct {
	BatchMode    bool   `yaml:"batch_mode"`
	Recursive    bool   `yaml:"recursive"`
	InputFile    string `yaml:"input_file"`    // Required unless batch_mode
	OutputFile   string `yaml:"output_file"`   // Optional, default: beside input
	InputFolder  string `yaml:"input_folder"`  // Required when batch_mode
	OutputFolder string `yaml:"output_folder"` // Optional, default: beside each input

	Engine         string `yaml:"engine"`          // "office" or "word" (empty = platform default)
	OfficeBinary   string `yaml:"office_binary"`   // soffice path (empty = auto-detect)
	Timeout        string `yaml:"timeout"`         // Go duration per document, e.g. "5m"
	LockFile       string `yaml:"lock_file"`       // Engine lock path (empty = default)
	ValidateOutput bool   `yaml:"validate_output"` // Fail when the PDF cannot be parsed
}

// Validate checks required fields, known values and field lengths.
// Called automatically by LoadConfig, but available for callers that
// build a Config by hand.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"input_file", c.InputFile},
		{"output_file", c.OutputFile},
		{"input_folder", c.InputFolder},
		{"output_folder", c.OutputFolder},
		{"office_binary", c.OfficeBinary},
		{"lock_file", c.LockFile},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("engine", c.Engine, MaxEngineLength); err != nil {
		return err
	}

	if c.BatchMode && c.InputFolder == "" {
		return fmt.Errorf("%w: input_folder (batch_mode is true)", ErrMissingField)
	}
	if !c.BatchMode && c.InputFile == "" {
		return fmt.Errorf("%w: input_file (batch_mode is false)", ErrMissingField)
	}

	if !knownEngine(c.Engine) {
		return fmt.Errorf("%w: engine %q (want office or word)", ErrInvalidValue, c.Engine)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. Zero means "use the default".
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout %q must be positive", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

func knownEngine(name string) bool {
	name = strings.ToLower(name)
	for _, e := range engines {
		if e == name {
			return true
		}
	}
	return false
}

// validateFieldLength checks that a field value does not exceed maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a single-file configuration with every optional
// setting left to its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the working directory, then in the user
// config directory (e.g. ~/.config/go-word2pdf/).
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath, SearchDirs())
		if err != nil {
			return nil, err
		}
	}

	data, err := yamlutil.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrInputTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchDirs returns the directories searched for a config name, in order.
// The empty string stands for the working directory.
func SearchDirs() []string {
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, appDir))
	}
	return dirs
}

// resolveConfigPath searches dirs for name. A name without a known
// extension is tried with .json, .yaml and .yml in turn.
func resolveConfigPath(name string, dirs []string) (string, error) {
	candidates := []string{name}
	if !fileutil.HasExt(name, extensions...) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}

	triedPaths := make([]string, 0, len(candidates)*len(dirs))
	for _, dir := range dirs {
		for _, c := range candidates {
			path := filepath.Join(dir, c)
			if fileutil.FileExists(path) {
				return path, nil
			}
			triedPaths = append(triedPaths, path)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
