package main

import (
	"context"
	"errors"
	"os"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/config"
)

// Exit codes for word2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// A batch whose items failed individually still exits 0: the report says
// which documents failed.
const (
	ExitSuccess = 0 // Successful conversion or completed batch
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Document or folder not found, wrong format, output not writable
	ExitEngine  = 4 // Engine unavailable, busy, or failed to export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage errors (exit 2), checked first: an unknown engine name wraps
	// ErrEngineUnavailable too.
	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrMissingField) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitUsage
	}

	// Engine errors (exit 4)
	if errors.Is(err, word2pdf.ErrConversionFailed) ||
		errors.Is(err, word2pdf.ErrEngineUnavailable) ||
		errors.Is(err, word2pdf.ErrEngineLocked) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitEngine
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, word2pdf.ErrNotFound) ||
		errors.Is(err, word2pdf.ErrInvalidFormat) ||
		errors.Is(err, word2pdf.ErrNotADirectory) ||
		errors.Is(err, word2pdf.ErrIO) {
		return ExitIO
	}

	return ExitGeneral
}
