package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dnd/internal/config"
	"github.com/cory-johannsen/dnd/internal/dice"
	"github.com/cory-johannsen/dnd/internal/driver"
	"github.com/cory-johannsen/dnd/internal/observability"
	"github.com/cory-johannsen/dnd/internal/preset"
	"github.com/cory-johannsen/dnd/internal/scripting"
)

type rootOptions struct {
	configPath string
	scriptPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "dnd [flags] EXPR...",
		Short: "Roll dice expressions",
		Long: `dnd evaluates dice expressions and prints one line per result.

  3d6+2        roll three six-sided dice and add two
  4d6:3        roll four dice and keep the three highest
  2x(1d20+5)   evaluate the body twice with fresh rolls
  @name        roll a preset loaded from presets.dir

Bad input is reported per expression and the run continues.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML configuration file (default: built-in defaults)")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Lua script to run after the expressions")
	return cmd
}

func run(opts *rootOptions, args []string) error {
	start := time.Now()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	src, err := dice.NewSource(cfg.Dice.Source, cfg.Dice.Seed)
	if err != nil {
		return err
	}
	roller := dice.NewLoggedRoller(src, logger)

	var presets *preset.Registry
	if cfg.Presets.Dir != "" {
		loaded, err := preset.LoadPresets(cfg.Presets.Dir)
		if err != nil {
			return err
		}
		if presets, err = preset.NewRegistry(loaded); err != nil {
			return err
		}
		logger.Info("presets loaded",
			zap.String("dir", cfg.Presets.Dir),
			zap.Int("count", len(loaded)),
		)
	}

	if err := driver.New(roller, presets, os.Stdout, logger).Run(args); err != nil {
		logger.Error("aborting run", zap.Error(err))
		return err
	}

	if opts.scriptPath != "" {
		eng := scripting.NewEngine(roller, logger, cfg.Scripting.InstructionLimit)
		if err := eng.RunFile(opts.scriptPath); err != nil {
			return err
		}
	}

	logger.Debug("done", zap.Duration("elapsed", time.Since(start)))
	return nil
}
