package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// largeDocumentSize triggers a patience warning before conversion.
const largeDocumentSize = 10 * 1024 * 1024

// marks colors status prefixes. Color is dropped automatically when the
// output is not a terminal.
type marks struct {
	ok   func(a ...interface{}) string
	fail func(a ...interface{}) string
	warn func(a ...interface{}) string
}

func newMarks(noColor bool) marks {
	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)
	if noColor {
		ok.DisableColor()
		fail.DisableColor()
		warn.DisableColor()
	}
	return marks{ok: ok.SprintFunc(), fail: fail.SprintFunc(), warn: warn.SprintFunc()}
}

// progress renders conversion events for a terminal.
type progress struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	verbose bool
	engine  string
	marks   marks
}

func newProgress(env *Environment, f *commonFlags, engine string) *progress {
	return &progress{
		stdout:  env.Stdout,
		stderr:  env.Stderr,
		quiet:   f.quiet,
		verbose: f.verbose,
		engine:  engine,
		marks:   newMarks(f.noColor),
	}
}

// handle prints one event.
func (p *progress) handle(ev word2pdf.Event) {
	switch ev.Kind {
	case word2pdf.EventPlanned:
		if !p.quiet && ev.Total > 1 {
			fmt.Fprintf(p.stdout, "Found %d Word document(s) to convert\n", ev.Total)
		}
	case word2pdf.EventStarted:
		p.started(ev)
	case word2pdf.EventStage:
		if p.verbose {
			fmt.Fprintf(p.stdout, "  %s...\n", ev.Stage)
		}
	case word2pdf.EventSucceeded:
		p.succeeded(ev)
	case word2pdf.EventFailed:
		fmt.Fprintf(p.stderr, "%s %s: %v%s\n",
			p.marks.fail("FAILED"), filepath.Base(ev.Source), ev.Err, hintFor(ev.Err, p.engine))
	case word2pdf.EventFinished:
		if ev.Report != nil {
			p.summary(ev.Report)
		}
	}
}

func (p *progress) started(ev word2pdf.Event) {
	if p.quiet {
		return
	}
	if ev.Total > 1 {
		fmt.Fprintf(p.stdout, "\n[%d/%d] Processing %s\n", ev.Index+1, ev.Total, filepath.Base(ev.Source))
	}
	if info, err := os.Stat(ev.Source); err == nil && info.Size() > largeDocumentSize {
		fmt.Fprintf(p.stdout, "  %s large document (%s), this may take several minutes\n",
			p.marks.warn("WARN"), humanize.Bytes(uint64(info.Size())))
	}
}

func (p *progress) succeeded(ev word2pdf.Event) {
	if p.quiet || ev.Result == nil {
		return
	}
	r := ev.Result
	details := []string{humanize.Bytes(uint64(r.Size))}
	if r.Pages > 0 {
		details = append(details, humanize.Comma(int64(r.Pages))+" page(s)")
	}
	if p.verbose {
		details = append(details, r.Duration.Round(time.Millisecond).String())
	}
	fmt.Fprintf(p.stdout, "%s Created %s (%s)\n", p.marks.ok("OK"), r.Destination, strings.Join(details, ", "))
}

// summary prints batch totals and the names of failed documents.
func (p *progress) summary(r *word2pdf.BatchReport) {
	if p.quiet || r.Empty() {
		return
	}
	fmt.Fprintf(p.stdout, "\n%d succeeded, %d failed\n", r.Succeeded, r.Failed)
	if r.Failed > 0 {
		fmt.Fprintln(p.stdout, "Failed files:")
		for _, name := range r.FailedNames {
			fmt.Fprintf(p.stdout, "  - %s\n", name)
		}
	}
}

// reportError prints a command-level error with its hint.
func (p *progress) reportError(err error) {
	fmt.Fprintf(p.stderr, "error: %v%s\n", err, hintFor(err, p.engine))
}

// hintFor returns troubleshooting advice for err, or an empty string.
func hintFor(err error, engine string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, word2pdf.ErrEngineLocked):
		return hints.ForEngineLocked()
	case errors.Is(err, word2pdf.ErrEngineUnavailable):
		return hints.ForEngineUnavailable(engine)
	case errors.Is(err, word2pdf.ErrInvalidFormat):
		return hints.ForInvalidFormat()
	case errors.Is(err, word2pdf.ErrIO):
		return hints.ForOutputDirectory()
	case errors.Is(err, word2pdf.ErrConversionFailed):
		if errors.Is(err, context.DeadlineExceeded) {
			return hints.ForTimeout()
		}
		return hints.ForEngineError(err.Error())
	}
	return ""
}
