package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	groupPending := fs.Bool("group", false, "group output by pending/done")
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}

	ui.SetColorForcing(false, cfg.NoColor)
	ui.SetTheme(cfg.Theme)

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.ReportTimestamp = cfg.LogTimestamps
	logger, err := logging.New(os.Stderr, opts)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", "source", cfg.Source)
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:  *groupPending,
		File:   cfg.File,
		Label:  cfg.Label,
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
