package word2pdf

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// ---------------------------------------------------------------------------
// Mock Engine
// ---------------------------------------------------------------------------

// mockLauncher records every engine call across sessions.
// Failures are keyed by source base name so batch tests can fail item k.
type mockLauncher struct {
	mu sync.Mutex

	launchErr  error
	openErr    map[string]error
	exportErr  map[string]error
	closeErr   error
	quitErr    error
	panicOn    string // base name whose export panics
	skipWrite  bool   // export "succeeds" without writing dest
	onExport   func(source string)
	pdfContent []byte

	launches int
	opens    int
	exports  int
	closes   int
	quits    int
	active   int
	maxLive  int
	exported []string
}

func (m *mockLauncher) Name() string { return "mock" }

func (m *mockLauncher) Launch(ctx context.Context) (Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launches++
	if m.launchErr != nil {
		return nil, m.launchErr
	}
	m.active++
	if m.active > m.maxLive {
		m.maxLive = m.active
	}
	return &mockEngine{l: m}, nil
}

func (m *mockLauncher) counts() (launches, opens, exports, closes, quits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launches, m.opens, m.exports, m.closes, m.quits
}

type mockEngine struct {
	l *mockLauncher
}

type mockDocument struct{ path string }

func (d *mockDocument) Path() string { return d.path }

func (e *mockEngine) Open(ctx context.Context, path string) (Document, error) {
	m := e.l
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens++
	if err := m.openErr[filepath.Base(path)]; err != nil {
		return nil, err
	}
	return &mockDocument{path: path}, nil
}

func (e *mockEngine) Export(ctx context.Context, doc Document, dest string, profile ExportProfile) error {
	m := e.l
	name := filepath.Base(doc.Path())

	m.mu.Lock()
	m.exports++
	m.exported = append(m.exported, name)
	hook := m.onExport
	err := m.exportErr[name]
	panics := m.panicOn == name
	skip := m.skipWrite
	content := m.pdfContent
	m.mu.Unlock()

	if hook != nil {
		hook(doc.Path())
	}
	if panics {
		panic("engine crashed")
	}
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if skip {
		return nil
	}
	if content == nil {
		content = []byte("%PDF-1.4 mock")
	}
	return os.WriteFile(dest, content, 0o600)
}

func (e *mockEngine) Close(doc Document) error {
	m := e.l
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return m.closeErr
}

func (e *mockEngine) Quit() error {
	m := e.l
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quits++
	m.active--
	return m.quitErr
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// withInspector replaces the PDF inspector (test-only option).
func withInspector(fn pdfInspector) Option {
	return func(c *Converter) {
		c.inspect = fn
	}
}

func fixedPages(n int) pdfInspector {
	return func(string) (int, error) { return n, nil }
}

// newTestConverter builds a Converter with a private lock file, a null
// logger and a stub inspector returning one page.
func newTestConverter(t *testing.T, l Launcher, opts ...Option) (*Converter, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	base := []Option{
		WithLauncher(l),
		WithLogger(logger),
		WithLockFile(filepath.Join(t.TempDir(), "engine.lock")),
		withInspector(fixedPages(1)),
	}
	return NewConverter(append(base, opts...)...), hook
}

// writeFiles creates files (relative to dir) with placeholder content.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("word"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// dirNames lists the entry names of dir in order.
func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("%s = %q, want %q", filepath.Base(path), data, want)
	}
}

// collect drains events until the channel is closed.
func collect(ch <-chan Event) []Event {
	var events []Event
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}
