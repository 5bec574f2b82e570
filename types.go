package word2pdf

import (
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Request describes one document to convert.
type Request struct {
	Source      string // Word document path (required)
	Destination string // PDF path (optional, default: Source with .pdf extension)
}

// Result describes a successful conversion.
type Result struct {
	Source      string
	Destination string
	Size        int64 // bytes written
	Pages       int   // 0 when the PDF could not be inspected
	Duration    time.Duration
}

// ItemResult is the outcome of one request inside a batch.
// Exactly one of Result and Err is set.
type ItemResult struct {
	Index   int
	Request Request
	Result  *Result
	Err     error
}

// BatchPlan is the ordered list of requests produced by PlanBatch.
// It is not modified while a batch runs.
type BatchPlan struct {
	Root       string
	OutputRoot string
	Recursive  bool
	Requests   []Request
}

// BatchReport accumulates batch outcomes in plan order.
type BatchReport struct {
	Succeeded   int
	Failed      int
	FailedNames []string     // base names of failed sources
	Items       []ItemResult // per-item detail, including the error of each failure
}

// Total returns the number of processed requests.
func (r *BatchReport) Total() int {
	return r.Succeeded + r.Failed
}

// Empty reports whether the batch found nothing to convert.
// An empty batch is informational, not a failure.
func (r *BatchReport) Empty() bool {
	return r.Total() == 0
}

// record appends an item outcome and updates the tallies.
func (r *BatchReport) record(item ItemResult) {
	r.Items = append(r.Items, item)
	if item.Err != nil {
		r.Failed++
		r.FailedNames = append(r.FailedNames, filepath.Base(item.Request.Source))
		return
	}
	r.Succeeded++
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	lockPath     string
	lockTimeout  time.Duration
	strictOutput bool
}

// Defaults for converterConfig.
const (
	defaultTimeout     = 10 * time.Minute
	defaultLockTimeout = 30 * time.Second
	defaultLockName    = "word2pdf-engine.lock"
)

// WithTimeout bounds a whole session: launch, open, export and teardown.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("word2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLauncher sets the engine used for every session.
func WithLauncher(l Launcher) Option {
	return func(c *Converter) {
		c.launcher = l
	}
}

// WithLogger sets the logger for session lifecycle and swallowed teardown errors.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithLockFile sets the file used to keep one engine session per machine.
// An empty path disables cross-process locking.
func WithLockFile(path string) Option {
	return func(c *Converter) {
		c.cfg.lockPath = path
	}
}

// WithLockTimeout sets how long a session waits for another process to
// release the engine lock.
// Panics if d <= 0.
func WithLockTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("word2pdf: WithLockTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.lockTimeout = d
	}
}

// WithValidation makes an unreadable output PDF a conversion failure.
// When disabled, inspection failures are logged and Result.Pages is 0.
func WithValidation(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strictOutput = strict
	}
}
