package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/fsrunner/tui"
	"github.com/urfave/cli/v3"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "fsr",
		Usage: "Pick a folder and a port, then start and stop a file server for it",
		Description: `Launches an external file server executable as a child process with
--path <folder> --port <port>, shows the URL other machines on the LAN can
use to reach it, and kills it again on request.

Without a subcommand an interactive form is shown.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log destination while the interactive form is shown",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML config file (default: ./fsr.yaml if present)",
			},
			&cli.StringFlag{
				Name:  "exe",
				Usage: "File server executable",
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Folder to serve",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port for the file server",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return withConfig(ctx, cfg), nil
		},
		Action: interactive,
		Commands: []*cli.Command{
			runCmd(),
			urlCmd(),
		},
	}
}

// interactive shows the form. The child is stopped when the form closes.
func interactive(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("the interactive form needs a terminal; use 'fsr run' instead")
	}

	cfg := configFrom(ctx)
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log.SetOutput(f)

	a := newApp(cfg)
	a.prefill()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startDir, _ := os.Getwd()
	model := tui.New(tui.Options{
		Controller: a.ctrl,
		StartDir:   startDir,
		Watch:      a.launcher.WatchExecutable,
		Context:    ctx,
	})

	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	if err := a.shutdown(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
