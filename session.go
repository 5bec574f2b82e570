package word2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Converter runs conversion sessions against one engine.
// Sessions never overlap: concurrent calls are serialized.
type Converter struct {
	cfg      converterConfig
	launcher Launcher
	logger   *logrus.Logger
	lock     *engineLock
	inspect  pdfInspector
	profile  ExportProfile
	mu       sync.Mutex
}

// NewConverter creates a Converter with default configuration.
// Without WithLauncher the platform default engine is used.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			lockPath:    DefaultLockPath(),
			lockTimeout: defaultLockTimeout,
		},
		inspect: PageCount,
		profile: DefaultProfile(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.SetOutput(io.Discard)
	}
	if c.launcher == nil {
		c.launcher = DefaultLauncher("")
	}
	c.lock = &engineLock{path: c.cfg.lockPath, timeout: c.cfg.lockTimeout, logger: c.logger}

	return c
}

// Engine returns the name of the configured engine.
func (c *Converter) Engine() string {
	return c.launcher.Name()
}

// Convert converts one Word document to PDF.
// The engine is always shut down before Convert returns, whatever the outcome.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	return c.convert(ctx, req, func(Stage) {})
}

// convert runs one session, reporting stage transitions to stage.
func (c *Converter) convert(ctx context.Context, req Request, stage func(Stage)) (result *Result, err error) {
	if err := validateSource(req.Source); err != nil {
		return nil, err
	}
	dest, err := resolveDestination(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	release, err := c.lock.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{
		"engine":      c.launcher.Name(),
		"source":      req.Source,
		"destination": dest,
	})
	log.Debug("Starting conversion session")

	prev, err := setAside(dest)
	if err != nil {
		return nil, err
	}
	defer func() {
		settle, what := prev.discard, "remove"
		if err != nil {
			settle, what = prev.restore, "restore"
		}
		if settleErr := settle(); settleErr != nil {
			log.WithError(settleErr).Warnf("Failed to %s previous output", what)
		}
	}()

	if err := c.runSession(ctx, log, req.Source, dest, stage); err != nil {
		log.WithError(err).Debug("Conversion session failed")
		return nil, err
	}

	info, err := os.Stat(dest)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s: engine reported success but %s was not written",
			ErrConversionFailed, filepath.Base(req.Source), dest)
	}

	pages, err := c.inspect(dest)
	if err != nil {
		if c.cfg.strictOutput {
			return nil, fmt.Errorf("%w: %s: %w", ErrConversionFailed, filepath.Base(req.Source), err)
		}
		log.WithError(err).Warn("Could not inspect output PDF")
	}

	result = &Result{
		Source:      req.Source,
		Destination: dest,
		Size:        info.Size(),
		Pages:       pages,
		Duration:    time.Since(start),
	}
	log.WithFields(logrus.Fields{"pages": pages, "duration": result.Duration}).Info("Converted document")
	return result, nil
}

// runSession drives the engine through launch, open and export.
// Teardown runs on every path once the engine is up: the document is
// closed, then the engine quits, each step independent of the other.
func (c *Converter) runSession(ctx context.Context, log *logrus.Entry, source, dest string, stage func(Stage)) (err error) {
	name := filepath.Base(source)

	stage(StageLaunch)
	engine, err := c.launcher.Launch(ctx)
	if err != nil {
		return sessionError(name, err)
	}

	var doc Document
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: engine panic: %v", ErrConversionFailed, name, r)
		}
		stage(StageCleanup)
		c.teardown(log, engine, doc)
	}()

	stage(StageOpen)
	doc, err = engine.Open(ctx, source)
	if err != nil {
		return sessionError(name, err)
	}

	stage(StageExport)
	if err := engine.Export(ctx, doc, dest, c.profile); err != nil {
		return sessionError(name, err)
	}
	return nil
}

// teardown closes doc (if opened) and quits engine. Failures are logged,
// never returned: they must not mask the conversion outcome.
func (c *Converter) teardown(log *logrus.Entry, engine Engine, doc Document) {
	if doc != nil {
		if err := closeSafely(engine, doc); err != nil {
			log.WithError(err).Warn("Failed to close document")
		}
	}
	if err := quitSafely(engine); err != nil {
		log.WithError(err).Warn("Failed to quit engine")
	}
}

func closeSafely(engine Engine, doc Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return engine.Close(doc)
}

func quitSafely(engine Engine) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return engine.Quit()
}

// sessionError wraps an engine failure so that callers can match both
// ErrConversionFailed and the engine's own sentinel.
func sessionError(name string, err error) error {
	if errors.Is(err, ErrConversionFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrConversionFailed, name, err)
}
