package word2pdf

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// PlanBatch lists the Word documents under root and pairs each with its
// destination. Word owner files ("~$name.docx") are skipped.
//
// Without outputRoot each PDF goes beside its source. With outputRoot,
// PDFs go directly under it, or, when recursive, under the same relative
// subdirectory as the source.
//
// Requests are ordered lexically by path, so repeated runs process files
// in the same order.
func PlanBatch(root, outputRoot string, recursive bool) (*BatchPlan, error) {
	if !fileutil.DirExists(root) {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	plan := &BatchPlan{Root: root, OutputRoot: outputRoot, Recursive: recursive}
	add := func(path string) {
		if !IsDocument(path) || IsOwnerFile(path) {
			return
		}
		plan.Requests = append(plan.Requests, Request{
			Source:      path,
			Destination: batchDestination(root, outputRoot, path, recursive),
		})
	}

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrNotADirectory, root, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				add(filepath.Join(root, e.Name()))
			}
		}
		return plan, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			add(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %v", ErrIO, root, err)
	}
	return plan, nil
}

// RequestFor returns the request for a source under the plan root, with the
// destination mapped the same way PlanBatch maps discovered documents.
func (p *BatchPlan) RequestFor(source string) Request {
	return Request{
		Source:      source,
		Destination: batchDestination(p.Root, p.OutputRoot, source, p.Recursive),
	}
}

// Collisions returns the destinations that more than one request writes,
// each with its sources in plan order: "a.doc" and "a.docx" in one folder
// both map to "a.pdf". Later items overwrite earlier ones.
func (p *BatchPlan) Collisions() map[string][]string {
	bySource := make(map[string][]string, len(p.Requests))
	for _, req := range p.Requests {
		dest := filepath.Clean(req.Destination)
		bySource[dest] = append(bySource[dest], req.Source)
	}
	collisions := make(map[string][]string)
	for dest, sources := range bySource {
		if len(sources) > 1 {
			collisions[dest] = sources
		}
	}
	return collisions
}

// batchDestination maps a source under root to its PDF path.
func batchDestination(root, outputRoot, source string, recursive bool) string {
	if outputRoot == "" {
		return DefaultDestination(source)
	}
	name := filepath.Base(source)
	if recursive {
		if rel, err := filepath.Rel(root, source); err == nil {
			name = rel
		}
	}
	return filepath.Join(outputRoot, fileutil.ReplaceExt(name, ExtPDF))
}

// ConvertBatch converts every request of plan in order, one session per
// document. A failed item never stops the batch. When ctx is cancelled the
// current session is torn down and the remaining items are recorded as
// failed with the context error.
//
// Progress is sent to events when non-nil. The caller must keep receiving
// until ConvertBatch returns; the channel is not closed.
func (c *Converter) ConvertBatch(ctx context.Context, plan *BatchPlan, events chan<- Event) *BatchReport {
	report := &BatchReport{}
	var requests []Request
	if plan != nil {
		requests = plan.Requests
		for dest, sources := range plan.Collisions() {
			c.logger.WithFields(logrus.Fields{"destination": dest, "sources": sources}).
				Warn("Several documents convert to the same PDF; the last one wins")
		}
	}

	em := newEmitter(events, len(requests))
	em.send(Event{Kind: EventPlanned})

	for i, req := range requests {
		item := c.convertItem(ctx, i, req, em)
		report.record(item)

		log := c.logger.WithField("source", req.Source)
		if item.Err != nil {
			log.WithError(item.Err).Warnf("Item %d/%d failed", i+1, len(requests))
		}
	}

	em.send(Event{Kind: EventFinished, Report: report})
	return report
}

// convertItem runs one request and reports its start, stages and outcome.
func (c *Converter) convertItem(ctx context.Context, index int, req Request, em *emitter) ItemResult {
	item := ItemResult{Index: index, Request: req}
	if err := ctx.Err(); err != nil {
		item.Err = err
		em.outcome(item)
		return item
	}

	em.send(Event{Kind: EventStarted, Index: index, Source: req.Source, Destination: req.Destination})
	item.Result, item.Err = c.convert(ctx, req, em.stageFunc(index, req))
	em.outcome(item)
	return item
}
