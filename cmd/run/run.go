// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the non-interactive command: evaluate one line and
// exit with the final stage's code.
package run

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/lish/internal/config"
	"github.com/matt-FFFFFF/lish/internal/repl"
	"github.com/urfave/cli/v3"
)

const (
	lineArg     = "line"
	configFlag  = "config"
	commandFlag = "command"
)

// RunCmd evaluates a single command line without starting the interactive
// shell. The process exit code is the exit code of the pipeline's final
// stage.
var RunCmd = &cli.Command{
	Name:        "run",
	Description: "Evaluate one command line and exit with the final stage's exit code.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      lineArg,
			UsageText: "LINE",
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    commandFlag,
			Aliases: []string{"c"},
			Usage:   "Command line to evaluate, alternative to the positional argument",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	line := cmd.StringArg(lineArg)
	if line == "" {
		line = cmd.String(commandFlag)
	}

	if line == "" {
		return cli.Exit("Please provide a command line to run", 1)
	}

	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r := repl.New(cfg)

	if err := r.Eval(ctx, line); err != nil && !errors.Is(err, repl.ErrExit) {
		return cli.Exit(repl.Diagnostic(err), r.LastExit())
	}

	if code := r.LastExit(); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
