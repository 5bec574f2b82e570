package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	word2pdf "github.com/alnah/go-word2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake engine
// ---------------------------------------------------------------------------

// fakeLauncher is an engine that writes a placeholder PDF.
// Documents whose base name is in fail are rejected at export.
type fakeLauncher struct {
	fail     map[string]bool
	onExport func(name string) // runs before the placeholder is written

	mu       sync.Mutex
	exported []string
}

var _ word2pdf.Launcher = (*fakeLauncher)(nil)

func (l *fakeLauncher) Name() string { return "fake" }

func (l *fakeLauncher) Launch(context.Context) (word2pdf.Engine, error) {
	return &fakeEngine{launcher: l}, nil
}

func (l *fakeLauncher) exports() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.exported...)
}

type fakeEngine struct {
	launcher *fakeLauncher
}

type fakeDocument struct{ path string }

func (d *fakeDocument) Path() string { return d.path }

func (e *fakeEngine) Open(_ context.Context, path string) (word2pdf.Document, error) {
	return &fakeDocument{path: path}, nil
}

func (e *fakeEngine) Export(_ context.Context, doc word2pdf.Document, dest string, _ word2pdf.ExportProfile) error {
	name := filepath.Base(doc.Path())
	if e.launcher.onExport != nil {
		e.launcher.onExport(name)
	}
	if e.launcher.fail[name] {
		return errors.New("0x800a03ec: document is corrupted")
	}
	e.launcher.mu.Lock()
	e.launcher.exported = append(e.launcher.exported, name)
	e.launcher.mu.Unlock()
	return os.WriteFile(dest, []byte("%PDF-1.4 fake"), 0o600)
}

func (e *fakeEngine) Close(word2pdf.Document) error { return nil }

func (e *fakeEngine) Quit() error { return nil }

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and files
// ---------------------------------------------------------------------------

// newTestEnv returns an environment with captured output and launcher l.
func newTestEnv(l word2pdf.Launcher) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:      time.Now,
		Stdout:   &stdout,
		Stderr:   &stderr,
		Launcher: l,
	}
	return env, &stdout, &stderr
}

// lockFlag keeps parallel tests off the shared default engine lock.
func lockFlag(t *testing.T) []string {
	t.Helper()
	return []string{"--lock-file", filepath.Join(t.TempDir(), "engine.lock")}
}

// writeFiles creates empty files (and parent folders) under dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("doc"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
