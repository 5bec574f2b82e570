package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/hints"
)

// runRunCmd executes a config-driven conversion.
// The config name comes from the argument, --config, WORD2PDF_CONFIG, then
// the default config.json, in that order.
func runRunCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseRunFlags(args)
	if err != nil {
		return flagErrorCode(err, env)
	}
	if len(positional) > 1 {
		fmt.Fprintf(env.Stderr, "error: %v: run takes one config, got %d\n", ErrInvalidFlag, len(positional))
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	name := resolveConfigName(positional, flags.config, envCfg.ConfigPath)

	cfg, err := config.LoadConfig(name)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: loading config: %v%s\n", err, configHint(err))
		return exitCodeFor(err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Loaded configuration from %s\n", name)
		if cfg.BatchMode {
			mode := "non-recursive"
			if cfg.Recursive {
				mode = "recursive"
			}
			fmt.Fprintf(env.Stdout, "Batch mode: %s\n", mode)
		}
	}

	j, err := newJob(cfg, &flags.common, envCfg, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg.Engine))
		return exitCodeFor(err)
	}
	return j.run(ctx)
}

// resolveConfigName picks the config to load.
func resolveConfigName(positional []string, flag, env string) string {
	switch {
	case len(positional) == 1:
		return positional[0]
	case flag != "":
		return flag
	case env != "":
		return env
	default:
		return config.DefaultName
	}
}

func configHint(err error) string {
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(configSearchPaths())
	}
	return ""
}

// configSearchPaths lists where a default config would be looked up.
func configSearchPaths() []string {
	dirs := config.SearchDirs()
	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			paths = append(paths, config.DefaultName)
			continue
		}
		paths = append(paths, filepath.Join(dir, config.DefaultName))
	}
	return paths
}
