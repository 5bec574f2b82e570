package word2pdf

import "context"

// Launcher starts engine instances. Each call to Launch yields a fresh,
// exclusively owned Engine that must be released with Quit.
type Launcher interface {
	// Name identifies the engine in logs and diagnostics.
	Name() string
	// Launch starts a non-interactive engine: no visible window, no alerts.
	Launch(ctx context.Context) (Engine, error)
}

// Engine is a live handle to an external word processor.
// Implementations are not safe for concurrent use.
type Engine interface {
	// Open opens the document at path read-only.
	Open(ctx context.Context, path string) (Document, error)
	// Export renders doc as PDF to dest using profile.
	Export(ctx context.Context, doc Document, dest string, profile ExportProfile) error
	// Close closes doc without saving changes.
	Close(doc Document) error
	// Quit terminates the engine. The handle is unusable afterwards.
	Quit() error
}

// Document is an open document handle owned by an Engine.
type Document interface {
	Path() string
}
