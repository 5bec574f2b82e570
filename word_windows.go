//go:build windows

package word2pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// Word automation constants.
const (
	wdAlertsNone            = 0
	wdDoNotSaveChanges      = 0
	wdExportFormatPDF       = 17
	wdExportDocumentContent = 0
	oleSFalse               = 0x00000001 // COM already initialized on this thread
)

// Launch starts a hidden Word instance with alerts suppressed.
// The calling goroutine is pinned to its OS thread until Quit, because
// COM objects belong to the apartment that created them.
func (WordLauncher) Launch(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != oleSFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("%w: initializing COM: %v", ErrEngineUnavailable, err)
		}
	}

	e := &wordEngine{}
	app, err := createWord()
	if err != nil {
		e.release()
		return nil, fmt.Errorf("%w: starting Word: %v", ErrEngineUnavailable, err)
	}
	e.app = app

	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		_ = e.Quit()
		return nil, fmt.Errorf("%w: hiding Word: %v", ErrEngineUnavailable, err)
	}
	if _, err := oleutil.PutProperty(app, "DisplayAlerts", wdAlertsNone); err != nil {
		_ = e.Quit()
		return nil, fmt.Errorf("%w: silencing Word alerts: %v", ErrEngineUnavailable, err)
	}
	return e, nil
}

func createWord() (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject("Word.Application")
	if err != nil {
		return nil, err
	}
	defer unknown.Release()
	return unknown.QueryInterface(ole.IID_IDispatch)
}

var (
	_ Engine   = (*wordEngine)(nil)
	_ Document = (*wordDocument)(nil)
)

type wordEngine struct {
	app  *ole.IDispatch
	quit bool
}

type wordDocument struct {
	path string
	disp *ole.IDispatch
}

func (d *wordDocument) Path() string { return d.path }

// Open loads path read-only.
func (e *wordEngine) Open(ctx context.Context, path string) (Document, error) {
	if err := e.usable(ctx); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	docs, err := oleutil.GetProperty(e.app, "Documents")
	if err != nil {
		return nil, fmt.Errorf("Word Documents collection: %w", err)
	}
	collection := docs.ToIDispatch()
	defer collection.Release()

	// FileName, ConfirmConversions, ReadOnly, AddToRecentFiles
	v, err := oleutil.CallMethod(collection, "Open", abs, false, true, false)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &wordDocument{path: abs, disp: v.ToIDispatch()}, nil
}

// Export calls Document.ExportAsFixedFormat with the profile settings.
func (e *wordEngine) Export(ctx context.Context, doc Document, dest string, p ExportProfile) error {
	if err := e.usable(ctx); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	d, ok := doc.(*wordDocument)
	if !ok || d.disp == nil {
		return errors.New("document is not open in this engine")
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dest, err)
	}

	// Positional arguments of ExportAsFixedFormat, in declaration order.
	_, err = oleutil.CallMethod(d.disp, "ExportAsFixedFormat",
		abs,                     // OutputFileName
		wdExportFormatPDF,       // ExportFormat
		false,                   // OpenAfterExport
		int(p.OptimizeFor),      // OptimizeFor
		int(p.Range),            // Range
		1,                       // From
		1,                       // To
		wdExportDocumentContent, // Item
		p.IncludeDocProps,       // IncludeDocProps
		p.KeepIRM,               // KeepIRM
		int(p.Bookmarks),        // CreateBookmarks
		p.DocStructureTags,      // DocStructureTags
		p.BitmapMissingFonts,    // BitmapMissingFonts
		p.Archival,              // UseISO19005_1
	)
	if err != nil {
		return fmt.Errorf("ExportAsFixedFormat: %w", err)
	}
	return nil
}

// Close closes doc without saving.
func (e *wordEngine) Close(doc Document) error {
	d, ok := doc.(*wordDocument)
	if !ok || d.disp == nil {
		return errors.New("document is not open in this engine")
	}
	defer func() {
		d.disp.Release()
		d.disp = nil
	}()
	if _, err := oleutil.CallMethod(d.disp, "Close", wdDoNotSaveChanges); err != nil {
		return fmt.Errorf("closing %s: %w", d.path, err)
	}
	return nil
}

// Quit shuts Word down and uninitializes COM, even if Quit fails.
func (e *wordEngine) Quit() error {
	if e.quit {
		return errors.New("engine already quit")
	}
	e.quit = true
	defer e.release()

	if e.app == nil {
		return nil
	}
	if _, err := oleutil.CallMethod(e.app, "Quit", wdDoNotSaveChanges); err != nil {
		return fmt.Errorf("quitting Word: %w", err)
	}
	return nil
}

func (e *wordEngine) release() {
	if e.app != nil {
		e.app.Release()
		e.app = nil
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (e *wordEngine) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.quit {
		return errors.New("engine already quit")
	}
	return nil
}
