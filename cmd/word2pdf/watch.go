package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/config"
)

// runWatchCmd converts Word documents as they appear in a folder, until
// interrupted.
func runWatchCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseWatchFlags(args)
	if err != nil {
		return flagErrorCode(err, env)
	}
	if len(positional) != 1 {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", ErrNoInput)
		printWatchUsage(env.Stderr)
		return ExitUsage
	}

	cfg := config.DefaultConfig()
	cfg.BatchMode = true
	cfg.Recursive = flags.recursive
	cfg.InputFolder = positional[0]
	cfg.OutputFolder = flags.output

	j, err := newJob(cfg, &flags.common, loadEnvConfig(), env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg.Engine))
		return exitCodeFor(err)
	}

	w := newFolderWatcher(j, flags.debounce, env.Now)
	w.existing = flags.existing
	if err := w.run(ctx); err != nil {
		j.progress.reportError(err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// folderWatcher is a hot folder: documents created or modified under the
// root are converted once they have been quiet for the debounce period.
type folderWatcher struct {
	job      *job
	debounce time.Duration
	existing bool
	now      func() time.Time

	plan    *word2pdf.BatchPlan
	pending map[string]time.Time // path -> last change
	ready   chan struct{}        // closed once the watches are in place

	bg     *word2pdf.BackgroundConverter
	events <-chan word2pdf.Event // nil while no conversion runs
}

func newFolderWatcher(j *job, debounce time.Duration, now func() time.Time) *folderWatcher {
	return &folderWatcher{
		job:      j,
		debounce: debounce,
		now:      now,
		pending:  make(map[string]time.Time),
		ready:    make(chan struct{}),
	}
}

// run watches until ctx is canceled. It returns an error only when the
// folder cannot be watched at all.
func (w *folderWatcher) run(ctx context.Context) error {
	cfg := w.job.cfg
	plan, err := word2pdf.PlanBatch(cfg.InputFolder, cfg.OutputFolder, cfg.Recursive)
	if err != nil {
		return err
	}
	w.plan = plan

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			w.job.logger.WithError(closeErr).Warn("Failed to close file watcher")
		}
	}()

	if err := w.watchTree(watcher, plan.Root); err != nil {
		return err
	}
	w.bg = word2pdf.NewBackgroundConverter(w.job.conv)
	defer w.drain()
	close(w.ready)

	if !w.job.progress.quiet {
		fmt.Fprintf(w.job.progress.stdout, "Watching %s for Word documents (Ctrl+C to stop)\n", plan.Root)
	}
	if w.existing && len(plan.Requests) > 0 {
		w.start(ctx, plan)
	}

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	// Conversions run on w.bg, so file events keep being read during a
	// long export and fsnotify's buffer never fills up.
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.observe(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.job.logger.WithError(err).Warn("File watcher error")
		case ev, ok := <-w.events:
			if !ok {
				w.events = nil
				w.bg.Wait()
				continue
			}
			w.job.progress.handle(ev)
		case <-ticker.C:
			if w.events == nil {
				w.flush(ctx)
			}
		}
	}
}

// start converts plan in the background. Its events are rendered by the
// run loop.
func (w *folderWatcher) start(ctx context.Context, plan *word2pdf.BatchPlan) {
	events, err := w.bg.StartBatch(ctx, plan)
	if err != nil {
		w.job.progress.reportError(err)
		return
	}
	w.events = events
}

// drain renders what is left of a running conversion before run returns.
// On cancellation the converter stops before its next document.
func (w *folderWatcher) drain() {
	if w.events == nil {
		return
	}
	for ev := range w.events {
		w.job.progress.handle(ev)
	}
	w.events = nil
	w.bg.Wait()
}

// watchTree adds root, and its subfolders in recursive mode.
func (w *folderWatcher) watchTree(watcher *fsnotify.Watcher, root string) error {
	if !w.job.cfg.Recursive {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("%w: watching %s: %v", word2pdf.ErrIO, root, err)
		}
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("%w: watching %s: %v", word2pdf.ErrIO, path, err)
		}
		return nil
	})
}

// observe records a change to a document, or starts watching a new subfolder.
func (w *folderWatcher) observe(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) && w.job.cfg.Recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watchTree(watcher, event.Name); err != nil {
				w.job.logger.WithError(err).Warn("Failed to watch new folder")
			}
			return
		}
	}

	if !word2pdf.IsDocument(event.Name) || word2pdf.IsOwnerFile(event.Name) {
		return
	}
	w.job.logger.WithField("source", event.Name).Debug("Document changed")
	w.pending[event.Name] = w.now()
}

// due removes and returns the pending documents that have settled,
// in path order.
func (w *folderWatcher) due() []string {
	now := w.now()
	var paths []string
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// flush starts converting the settled documents that still exist.
// Changes seen while a conversion runs stay pending for the next flush.
func (w *folderWatcher) flush(ctx context.Context) {
	var requests []word2pdf.Request
	for _, path := range w.due() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		requests = append(requests, w.plan.RequestFor(path))
	}
	if len(requests) == 0 {
		return
	}

	batch := *w.plan
	batch.Requests = requests
	w.start(ctx, &batch)
}
