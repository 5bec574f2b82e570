package word2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNotFound         = errors.New("source document not found")
	ErrInvalidFormat    = errors.New("source must be a Word document (.doc or .docx)")
	ErrNotADirectory    = errors.New("input folder not found or not a directory")
	ErrIO               = errors.New("cannot prepare output location")
	ErrConversionFailed = errors.New("conversion failed")

	// Engine errors.
	ErrEngineUnavailable = errors.New("conversion engine unavailable")
	ErrEngineLocked      = errors.New("conversion engine is in use by another process")

	// Background converter errors.
	ErrBusy = errors.New("a conversion is already running")

	// Export profile validation errors.
	ErrInvalidProfile = errors.New("invalid export profile")
)
