package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/config"
)

// job is a validated conversion run: one document or one folder.
type job struct {
	cfg      *config.Config
	conv     *word2pdf.Converter
	progress *progress
	logger   *logrus.Logger
}

// newJob layers the environment and flags over cfg, validates the result
// and builds the converter.
// Precedence: CLI flags > env vars > config file > defaults.
func newJob(cfg *config.Config, f *commonFlags, envCfg *envConfig, env *Environment) (*job, error) {
	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, envCfg.LogLevel, f)
	conv, err := newConverter(cfg, env, logger)
	if err != nil {
		return nil, err
	}

	return &job{
		cfg:      cfg,
		conv:     conv,
		progress: newProgress(env, f, conv.Engine()),
		logger:   logger,
	}, nil
}

// newConverter builds a Converter from a validated config.
func newConverter(cfg *config.Config, env *Environment, logger *logrus.Logger) (*word2pdf.Converter, error) {
	launcher := env.Launcher
	if launcher == nil {
		l, err := word2pdf.NewLauncher(cfg.Engine, cfg.OfficeBinary)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFlag, err)
		}
		launcher = l
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []word2pdf.Option{
		word2pdf.WithLauncher(launcher),
		word2pdf.WithLogger(logger),
		word2pdf.WithValidation(cfg.ValidateOutput),
	}
	if timeout > 0 {
		opts = append(opts, word2pdf.WithTimeout(timeout))
	}
	if cfg.LockFile != "" {
		opts = append(opts, word2pdf.WithLockFile(cfg.LockFile))
	}
	return word2pdf.NewConverter(opts...), nil
}

// run executes the job and returns the exit code.
func (j *job) run(ctx context.Context) int {
	if j.cfg.BatchMode {
		return j.runBatch(ctx)
	}
	return j.runSingle(ctx)
}

// runSingle converts one document. A failure sets the exit code.
func (j *job) runSingle(ctx context.Context) int {
	req := word2pdf.Request{Source: j.cfg.InputFile, Destination: j.cfg.OutputFile}

	bg := word2pdf.NewBackgroundConverter(j.conv)
	events, err := bg.Start(ctx, req)
	if err != nil {
		j.progress.reportError(err)
		return exitCodeFor(err)
	}

	var final error
	for ev := range events {
		j.progress.handle(ev)
		if ev.Kind == word2pdf.EventFinished {
			final = ev.Err
		}
	}
	bg.Wait()

	return exitCodeFor(final)
}

// runBatch converts a folder. Per-document failures are reported but do
// not change the exit code; only an unusable folder does.
func (j *job) runBatch(ctx context.Context) int {
	plan, err := word2pdf.PlanBatch(j.cfg.InputFolder, j.cfg.OutputFolder, j.cfg.Recursive)
	if err != nil {
		j.progress.reportError(err)
		return exitCodeFor(err)
	}
	if len(plan.Requests) == 0 {
		if !j.progress.quiet {
			fmt.Fprintf(j.progress.stdout, "No Word documents found in: %s\n", plan.Root)
		}
		return ExitSuccess
	}

	report, err := j.convertPlan(ctx, plan)
	if err != nil {
		j.progress.reportError(err)
		return exitCodeFor(err)
	}
	j.logger.WithFields(logrus.Fields{
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	}).Debug("Batch finished")

	if ctx.Err() != nil {
		fmt.Fprintln(j.progress.stderr, "interrupted")
		return ExitGeneral
	}
	return ExitSuccess
}

// convertPlan runs plan in the background, rendering progress until the
// final report arrives.
func (j *job) convertPlan(ctx context.Context, plan *word2pdf.BatchPlan) (*word2pdf.BatchReport, error) {
	bg := word2pdf.NewBackgroundConverter(j.conv)
	events, err := bg.StartBatch(ctx, plan)
	if err != nil {
		return nil, err
	}

	report := &word2pdf.BatchReport{}
	for ev := range events {
		j.progress.handle(ev)
		if ev.Kind == word2pdf.EventFinished && ev.Report != nil {
			report = ev.Report
		}
	}
	bg.Wait()
	return report, nil
}
