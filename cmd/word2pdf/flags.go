package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-word2pdf/internal/config"
)

// CLI usage errors.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrInvalidFlag = errors.New("invalid flag value")
)

// Defaults for the watch and find commands.
const (
	defaultDebounce  = 2 * time.Second
	defaultFindHours = 1
)

// commonFlags holds flags shared across conversion commands.
type commonFlags struct {
	engine   string
	soffice  string
	timeout  string
	lockFile string
	validate bool
	quiet    bool
	verbose  bool
	noColor  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common commonFlags
	output string
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common    commonFlags
	output    string
	recursive bool
}

// runFlags holds all flags for the run command.
type runFlags struct {
	common commonFlags
	config string
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common    commonFlags
	output    string
	recursive bool
	existing  bool
	debounce  time.Duration
}

// findFlags holds all flags for the find command.
type findFlags struct {
	hours   int
	match   string
	noColor bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine: office, word")
	fs.StringVar(&f.soffice, "soffice", "", "LibreOffice binary path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 90s, 5m)")
	fs.StringVar(&f.lockFile, "lock-file", "", "engine lock file path")
	fs.BoolVar(&f.validate, "validate", false, "fail when the PDF cannot be parsed")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show session stages and debug logs")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch command flags and returns positional args.
func parseBatchFlags(args []string) (*batchFlags, []string, error) {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	f := &batchFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "include subfolders")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBatchUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRunFlags parses run command flags and returns positional args.
func parseRunFlags(args []string) (*runFlags, []string, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	f := &runFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRunUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*watchFlags, []string, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "watch subfolders")
	fs.BoolVar(&f.existing, "existing", false, "convert documents already in the folder first")
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "quiet period before converting a changed file")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printWatchUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.debounce <= 0 {
		return nil, nil, fmt.Errorf("%w: --debounce must be positive, got %s", ErrInvalidFlag, f.debounce)
	}
	return f, fs.Args(), nil
}

// parseFindFlags parses find command flags and returns positional args.
func parseFindFlags(args []string) (*findFlags, []string, error) {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	f := &findFlags{}

	fs.IntVarP(&f.hours, "hours", "H", defaultFindHours, "look back this many hours")
	fs.StringVarP(&f.match, "match", "m", "", "fuzzy file name filter")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	fs.Usage = func() { printFindUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.hours <= 0 {
		return nil, nil, fmt.Errorf("%w: --hours must be positive, got %d", ErrInvalidFlag, f.hours)
	}
	return f, fs.Args(), nil
}

// mergeFlags applies explicitly set flags over cfg.
// Precedence: CLI flags > env vars > config file > defaults.
func mergeFlags(f *commonFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Engine = f.engine
	}
	if f.soffice != "" {
		cfg.OfficeBinary = f.soffice
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.lockFile != "" {
		cfg.LockFile = f.lockFile
	}
	if f.validate {
		cfg.ValidateOutput = true
	}
}
