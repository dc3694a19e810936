// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/lish"
	"github.com/matt-FFFFFF/lish/cmd/parse"
	"github.com/matt-FFFFFF/lish/cmd/run"
	"github.com/matt-FFFFFF/lish/internal/config"
	"github.com/matt-FFFFFF/lish/internal/repl"
	"github.com/urfave/cli/v3"
)

// ConfigFlag names the flag that overrides the configuration file path.
const ConfigFlag = "config"

// RootCmd is the root command for the CLI. Invoked without a subcommand it
// starts the interactive shell.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		parse.ParseCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "lish",
	Version:   lish.Version,
	Description: `Lish is a small line-oriented shell. It reads one command line at a
time, builds a command tree from pipes, redirects and background markers, and
realizes the tree as real operating system processes connected by pipes.`,
	Usage:     "lish [run \"echo hello | grep h\"]",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   config.DefaultPath(),
		},
	},
	Action: interactiveAction,
}

func interactiveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String(ConfigFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if code := repl.New(cfg).Run(ctx); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
