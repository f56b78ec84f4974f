package main

import (
	"context"
	"fmt"

	"github.com/sonnes/fsrunner/netaddr"
	"github.com/urfave/cli/v3"
)

func urlCmd() *cli.Command {
	return &cli.Command{
		Name:  "url",
		Usage: "Print the URL the file server will be reachable at",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			if cfg.Port == "" {
				return fmt.Errorf("--port is required")
			}
			ip, err := netaddr.LocalIPv4()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, netaddr.ServeURL(ip, cfg.Port))
			return nil
		},
	}
}
