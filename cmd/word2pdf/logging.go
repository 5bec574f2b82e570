package main

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// parseLogLevel maps a WORD2PDF_LOG_LEVEL value to a logrus level.
// Unknown or empty values fall back to warn.
func parseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// newLogger returns the CLI logger writing to w.
// -v and -q take precedence over the environment level.
func newLogger(w io.Writer, envLevel string, f *commonFlags) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    f.noColor,
	})

	level := parseLogLevel(envLevel)
	switch {
	case f.verbose:
		level = logrus.DebugLevel
	case f.quiet:
		level = logrus.ErrorLevel
	}
	logger.SetLevel(level)
	return logger
}
