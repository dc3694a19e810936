// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parse contains the debugging command that prints the command tree
// (or the raw token stream) for a line without executing it.
package parse

import (
	"context"
	"fmt"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/lish/internal/color"
	"github.com/matt-FFFFFF/lish/internal/parser"
	"github.com/matt-FFFFFF/lish/internal/repl"
	"github.com/matt-FFFFFF/lish/internal/token"
	"github.com/urfave/cli/v3"
)

const (
	lineArg    = "line"
	tokensFlag = "tokens"
)

// ParseCmd prints the command tree for a line as indented JSON without
// executing anything.
var ParseCmd = &cli.Command{
	Name:        "parse",
	Description: "Print the command tree for a line without executing it.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      lineArg,
			UsageText: "LINE",
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    tokensFlag,
			Aliases: []string{"t"},
			Usage:   "Print the token stream instead of the command tree",
			Value:   false,
		},
	},
	Action: actionFunc,
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	line := cmd.StringArg(lineArg)
	if line == "" {
		return cli.Exit("Please provide a command line to parse", 1)
	}

	var value any

	if cmd.Bool(tokensFlag) {
		value = tokenValues(line)
	} else {
		node, err := parser.Parse(line)
		if err != nil {
			return cli.Exit(repl.Diagnostic(err), 2)
		}

		value = nodeValue(node)
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = 2
	formatter.DisabledColor = !color.Enabled()

	out, err := formatter.Marshal(value)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(cmd.Writer, string(out))

	return nil
}

// nodeValue renders a command tree as plain maps and slices so the colorized
// JSON formatter can walk it.
func nodeValue(n parser.Node) any {
	switch n := n.(type) {
	case *parser.Command:
		args := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, a)
		}

		return map[string]any{
			"type": "command",
			"name": n.Name,
			"args": args,
		}

	case *parser.Pipe:
		return map[string]any{
			"type":  "pipe",
			"left":  nodeValue(n.Left),
			"right": nodeValue(n.Right),
		}

	case *parser.Redirect:
		return map[string]any{
			"type":    "redirect",
			"mode":    n.Mode.String(),
			"file":    n.File,
			"command": nodeValue(n.Command),
		}

	case *parser.Background:
		return map[string]any{
			"type":    "background",
			"command": nodeValue(n.Command),
		}
	}

	return map[string]any{"type": fmt.Sprintf("%T", n)}
}

func tokenValues(line string) []any {
	tz := token.NewTokenizer(line)

	var out []any

	for {
		tok, ok := tz.Next()
		if !ok {
			return out
		}

		out = append(out, map[string]any{
			"kind": tok.Kind.String(),
			"text": tok.Text,
		})
	}
}
