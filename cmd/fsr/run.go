package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sonnes/fsrunner/session"
	"github.com/urfave/cli/v3"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the file server without the form and stop it on Ctrl-C",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp(configFrom(ctx))
			a.prefill()
			out := cmd.Root().Writer

			v := a.ctrl.View()
			if v.Status.Kind == session.KindEnvironment {
				warnf(out, "%s", v.Status.Detail)
			}

			if r := a.ctrl.Start(); r.Failed() {
				return errors.New(r.Detail)
			}
			p, _ := a.ctrl.Snapshot().Process()
			successf(out, "serving %s (pid %d)", a.ctrl.View().Path, p.PID)
			if url := a.ctrl.View().URL; url != "" {
				infof(out, "%s", url)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			done, launchID := a.ctrl.Done()
			select {
			case <-ctx.Done():
				if err := a.shutdown(); err != nil {
					return err
				}
				successf(out, "server stopped")
				return nil
			case <-done:
				r := a.ctrl.Exited(launchID)
				return errors.New(r.Detail)
			}
		},
	}
}
