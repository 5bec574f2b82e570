package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-word2pdf/internal/config"
)

// runConvertCmd converts a single document.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return flagErrorCode(err, env)
	}
	if len(positional) == 0 {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", ErrNoInput)
		printConvertUsage(env.Stderr)
		return ExitUsage
	}
	if len(positional) > 1 {
		fmt.Fprintf(env.Stderr, "error: %v: convert takes one document, got %d\n", ErrInvalidFlag, len(positional))
		return ExitUsage
	}

	cfg := config.DefaultConfig()
	cfg.InputFile = positional[0]
	cfg.OutputFile = flags.output

	return runJob(ctx, cfg, &flags.common, env)
}

// runBatchCmd converts every Word document of a folder.
func runBatchCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseBatchFlags(args)
	if err != nil {
		return flagErrorCode(err, env)
	}
	if len(positional) == 0 {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", ErrNoInput)
		printBatchUsage(env.Stderr)
		return ExitUsage
	}
	if len(positional) > 1 {
		fmt.Fprintf(env.Stderr, "error: %v: batch takes one folder, got %d\n", ErrInvalidFlag, len(positional))
		return ExitUsage
	}

	cfg := config.DefaultConfig()
	cfg.BatchMode = true
	cfg.Recursive = flags.recursive
	cfg.InputFolder = positional[0]
	cfg.OutputFolder = flags.output

	return runJob(ctx, cfg, &flags.common, env)
}

// runJob builds and executes a job, reporting setup errors.
func runJob(ctx context.Context, cfg *config.Config, f *commonFlags, env *Environment) int {
	j, err := newJob(cfg, f, loadEnvConfig(), env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg.Engine))
		return exitCodeFor(err)
	}
	return j.run(ctx)
}
