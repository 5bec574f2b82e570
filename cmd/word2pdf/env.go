package main

import (
	"io"
	"os"
	"time"

	word2pdf "github.com/alnah/go-word2pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the engine launcher.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Launcher overrides engine selection when set. Nil resolves the
	// engine from flags, environment and config.
	Launcher word2pdf.Launcher
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
