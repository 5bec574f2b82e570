package word2pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/process"
)

// Engine names accepted by NewLauncher.
const (
	EngineOffice = "office"
	EngineWord   = "word"
)

// officeWaitDelay bounds how long Wait lingers on output pipes after a kill.
const officeWaitDelay = 5 * time.Second

// officeCandidates are tried in order when no binary is configured.
var officeCandidates = []string{"soffice", "libreoffice"}

// officeInstallPaths are well-known install locations checked after PATH.
var officeInstallPaths = map[string][]string{
	"darwin": {"/Applications/LibreOffice.app/Contents/MacOS/soffice"},
	"linux": {
		"/usr/bin/soffice",
		"/usr/lib/libreoffice/program/soffice",
		"/opt/libreoffice/program/soffice",
		"/snap/bin/libreoffice",
	},
	"windows": {
		`C:\Program Files\LibreOffice\program\soffice.exe`,
		`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
	},
}

// NewLauncher returns the launcher for an engine name.
// An empty name selects the platform default.
func NewLauncher(name, officeBinary string) (Launcher, error) {
	switch strings.ToLower(name) {
	case "":
		return DefaultLauncher(officeBinary), nil
	case EngineOffice, "libreoffice", "soffice":
		return &OfficeLauncher{Binary: officeBinary}, nil
	case EngineWord, "msword":
		return WordLauncher{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q (want %q or %q)",
			ErrEngineUnavailable, name, EngineOffice, EngineWord)
	}
}

// DefaultLauncher returns Microsoft Word on Windows and LibreOffice elsewhere.
func DefaultLauncher(officeBinary string) Launcher {
	if runtime.GOOS == "windows" {
		return WordLauncher{}
	}
	return &OfficeLauncher{Binary: officeBinary}
}

// FindOffice resolves the LibreOffice binary: binary if set, then PATH,
// then well-known install locations.
func FindOffice(binary string) (string, error) {
	if binary != "" {
		path, err := exec.LookPath(binary)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, binary, err)
		}
		return path, nil
	}
	for _, name := range officeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	for _, path := range officeInstallPaths[runtime.GOOS] {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: LibreOffice not found in PATH or standard locations", ErrEngineUnavailable)
}

// OfficeLauncher starts headless LibreOffice sessions.
type OfficeLauncher struct {
	Binary string // soffice path or name (optional, default: auto-detect)
}

// Name implements Launcher.
func (l *OfficeLauncher) Name() string { return EngineOffice }

// Launch resolves the binary and prepares a private user profile so the
// session never collides with a desktop LibreOffice instance.
func (l *OfficeLauncher) Launch(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bin, err := FindOffice(l.Binary)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	profile, cleanup, err := fileutil.MakeTempDir("word2pdf-profile-" + id[:8])
	if err != nil {
		return nil, fmt.Errorf("%w: creating engine profile: %v", ErrEngineUnavailable, err)
	}

	return &officeEngine{
		binary:  bin,
		id:      id,
		profile: profile,
		cleanup: cleanup,
	}, nil
}

// Compile-time interface checks.
var (
	_ Launcher = (*OfficeLauncher)(nil)
	_ Engine   = (*officeEngine)(nil)
	_ Document = (*officeDocument)(nil)
)

// officeEngine runs one soffice process per export.
type officeEngine struct {
	binary  string
	id      string
	profile string
	cleanup func()

	mu   sync.Mutex
	pid  int // running export, 0 when idle
	quit bool
}

type officeDocument struct {
	path   string
	closed bool
}

func (d *officeDocument) Path() string { return d.path }

// Open checks that path is readable. LibreOffice loads the document
// itself during export and never writes to it.
func (e *officeEngine) Open(ctx context.Context, path string) (Document, error) {
	if err := e.usable(ctx); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	f, err := os.Open(abs) // #nosec G304 -- path validated by the caller
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	_ = f.Close()
	return &officeDocument{path: abs}, nil
}

// Export converts doc into dest through a private output directory, then
// moves the produced file into place.
func (e *officeEngine) Export(ctx context.Context, doc Document, dest string, profile ExportProfile) error {
	if err := e.usable(ctx); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	d, ok := doc.(*officeDocument)
	if !ok || d.closed {
		return errors.New("document is not open in this engine")
	}

	outDir, cleanupOut, err := fileutil.MakeTempDir("word2pdf-out")
	if err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	defer cleanupOut()

	filter, err := officeFilter(profile)
	if err != nil {
		return err
	}

	args := officeArgs(e.profile, filter, outDir, d.path)
	cmd := exec.CommandContext(ctx, e.binary, args...) // #nosec G204 -- binary resolved by FindOffice
	process.Isolate(cmd)
	cmd.Cancel = func() error { return process.KillGroup(cmd.Process.Pid) }
	cmd.WaitDelay = officeWaitDelay
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := e.start(cmd); err != nil {
		return fmt.Errorf("starting %s: %w", filepath.Base(e.binary), err)
	}
	err = cmd.Wait()
	e.finished()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("%s: %v: %s", filepath.Base(e.binary), err, strings.TrimSpace(output.String()))
	}

	produced := filepath.Join(outDir, filepath.Base(fileutil.ReplaceExt(d.path, ExtPDF)))
	if !fileutil.FileExists(produced) {
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			msg = "no output produced"
		}
		return fmt.Errorf("%s: %s", filepath.Base(e.binary), msg)
	}

	if err := moveFile(produced, dest); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// Close releases doc. LibreOffice holds no handle between exports.
func (e *officeEngine) Close(doc Document) error {
	d, ok := doc.(*officeDocument)
	if !ok {
		return errors.New("document does not belong to this engine")
	}
	if d.closed {
		return errors.New("document already closed")
	}
	d.closed = true
	return nil
}

// Quit kills a running export, if any, and removes the private profile.
func (e *officeEngine) Quit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.quit {
		return errors.New("engine already quit")
	}
	e.quit = true

	var err error
	if e.pid != 0 {
		err = process.KillGroup(e.pid)
		e.pid = 0
	}
	e.cleanup()
	if fileutil.DirExists(e.profile) {
		err = errors.Join(err, fmt.Errorf("profile %s was not removed", e.profile))
	}
	return err
}

func (e *officeEngine) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.quit {
		return errors.New("engine already quit")
	}
	return nil
}

func (e *officeEngine) start(cmd *exec.Cmd) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return err
	}
	e.pid = cmd.Process.Pid
	return nil
}

func (e *officeEngine) finished() {
	e.mu.Lock()
	e.pid = 0
	e.mu.Unlock()
}

// officeArgs builds the soffice command line for one export.
func officeArgs(profileDir, filter, outDir, source string) []string {
	return []string{
		"--headless",
		"--invisible",
		"--norestore",
		"--nologo",
		"--nodefault",
		"--nolockcheck",
		"-env:UserInstallation=" + fileURL(profileDir),
		"--convert-to", filter,
		"--outdir", outDir,
		source,
	}
}

// fileURL converts an absolute path into a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// filterValue is one typed property of the writer_pdf_Export filter.
type filterValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// officeFilter maps profile onto writer_pdf_Export options.
// KeepIRM and IncludeDocProps have no LibreOffice counterpart: document
// properties are always exported and IRM is not supported.
func officeFilter(profile ExportProfile) (string, error) {
	boolean := func(v bool) filterValue {
		return filterValue{Type: "boolean", Value: fmt.Sprint(v)}
	}
	long := func(v int) filterValue {
		return filterValue{Type: "long", Value: fmt.Sprint(v)}
	}

	opts := map[string]filterValue{
		"ExportBookmarks":    boolean(profile.Bookmarks != BookmarksNone),
		"ExportNotes":        boolean(false),
		"UseTaggedPDF":       boolean(profile.DocStructureTags),
		"EmbedStandardFonts": boolean(profile.BitmapMissingFonts),
		"SelectPdfVersion":   long(0),
	}
	if profile.Archival {
		opts["SelectPdfVersion"] = long(1)
	}
	switch profile.OptimizeFor {
	case OptimizeForScreen:
		opts["Quality"] = long(75)
		opts["ReduceImageResolution"] = boolean(true)
		opts["MaxImageResolution"] = long(150)
	default:
		opts["Quality"] = long(100)
		opts["ReduceImageResolution"] = boolean(false)
	}

	data, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return "pdf:writer_pdf_Export:" + string(data), nil
}

// moveFile renames src to dst, copying when they are on different volumes.
// dst is replaced if it exists.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src) // #nosec G304 -- engine output in a private temp dir
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) // #nosec G302 G304 -- PDF is a user document
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
