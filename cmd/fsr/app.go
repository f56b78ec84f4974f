package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/sonnes/fsrunner/config"
	"github.com/sonnes/fsrunner/controller"
	"github.com/sonnes/fsrunner/launcher"
	"github.com/urfave/cli/v3"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cfg, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"exe", &cfg.Executable},
		{"path", &cfg.Path},
		{"port", &cfg.Port},
		{"log-file", &cfg.LogFile},
	}
	for _, o := range overrides {
		if v := cmd.String(o.flag); v != "" {
			*o.dst = v
		}
	}
	if cmd.IsSet("log") {
		cfg.LogLevel = cmd.String("log")
	}
	return cfg, nil
}

// app wires the launcher and controller for a command.
type app struct {
	cfg      config.Config
	launcher *launcher.Launcher
	ctrl     *controller.Controller
}

func newApp(cfg config.Config) *app {
	logger := log.Default()
	l := launcher.New(logger)
	return &app{
		cfg:      cfg,
		launcher: l,
		ctrl: controller.New(controller.Options{
			Executable: cfg.Executable,
			Spawner:    controller.FromLauncher(l),
			Logger:     logger,
		}),
	}
}

// prefill copies configured folder and port into the session.
func (a *app) prefill() {
	if a.cfg.Path != "" {
		a.ctrl.SetServePath(a.cfg.Path)
	}
	if a.cfg.Port != "" {
		a.ctrl.SetPort(a.cfg.Port)
	}
}

// shutdown stops a server still attached when the command ends.
func (a *app) shutdown() error {
	if !a.ctrl.View().CanStop {
		return nil
	}
	if r := a.ctrl.Stop(); r.Failed() {
		return errors.New(r.Detail)
	}
	return nil
}
