// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/lish/internal/color"
	"github.com/matt-FFFFFF/lish/internal/config"
	"github.com/matt-FFFFFF/lish/internal/ctxlog"
	"github.com/matt-FFFFFF/lish/internal/engine"
	"github.com/matt-FFFFFF/lish/internal/parser"
	"github.com/peterh/liner"
	"github.com/spf13/afero"
)

// ErrExit is the sentinel carried out of the loop by the exit builtin.
var ErrExit = errors.New("exit")

const (
	exitCodeParseError      = 2
	exitCodeExecError       = 1
	exitCodeCommandNotFound = 127
)

// Repl is the interactive read-eval-print loop. Stdout and Stderr default to
// the process streams and are replaceable for tests.
type Repl struct {
	cfg      config.Config
	stdout   io.Writer
	stderr   io.Writer
	lastExit int
}

// New creates a Repl with the given configuration.
func New(cfg config.Config) *Repl {
	return &Repl{
		cfg:    cfg,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run executes the interactive loop until the exit builtin or end of input.
// It returns the exit code of the shell process.
func (r *Repl) Run(ctx context.Context) int {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	r.loadHistory(ctx, line)
	defer r.saveHistory(ctx, line)

	for {
		if err := ctx.Err(); err != nil {
			return r.lastExit
		}

		input, err := line.Prompt(ExpandPrompt(r.cfg.Prompt))

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.stdout)
			return r.lastExit
		case err != nil:
			r.printError(err)
			return exitCodeExecError
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		if err := r.Eval(ctx, input); err != nil {
			if errors.Is(err, ErrExit) {
				return r.lastExit
			}

			r.printError(err)
		}
	}
}

// Eval interprets one input line: a builtin is handled in-process, anything
// else is parsed and executed as a pipeline. The shell's last exit code is
// updated either way. A non-nil return is a shell-level failure, not a
// non-zero exit code from a command.
func (r *Repl) Eval(ctx context.Context, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	if handled, err := r.builtin(input); handled {
		return err
	}

	node, err := parser.Parse(input)
	if err != nil {
		r.lastExit = exitCodeParseError
		return err
	}

	ec, err := engine.New(node).Execute(ctx)
	if err != nil {
		r.lastExit = exitCodeExecError
		if errors.Is(err, engine.ErrCommandNotFound) {
			r.lastExit = exitCodeCommandNotFound
		}

		return err
	}

	code, drainErr := engine.Drain(ctx, ec, r.stdout, r.stderr)
	closeErr := ec.Close()

	r.lastExit = code

	return errors.Join(drainErr, closeErr)
}

// LastExit returns the exit code of the most recent evaluation.
func (r *Repl) LastExit() int {
	return r.lastExit
}

// builtin handles the commands that must run inside the shell process.
// It reports whether the input named one.
func (r *Repl) builtin(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "exit":
		if len(fields) > 1 {
			code, err := strconv.Atoi(fields[1])
			if err != nil {
				r.lastExit = exitCodeExecError
				return true, fmt.Errorf("exit: invalid code %q", fields[1])
			}

			r.lastExit = code
		}

		return true, ErrExit

	case "cd":
		dir := ""
		if len(fields) > 1 {
			dir = fields[1]
		}

		if err := r.chdir(dir); err != nil {
			r.lastExit = exitCodeExecError
			return true, err
		}

		r.lastExit = 0

		return true, nil
	}

	return false, nil
}

// chdir changes the shell's working directory. An empty or "~"-prefixed
// target resolves against the user's home directory.
func (r *Repl) chdir(dir string) error {
	if dir == "" || strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cd: %w", err)
		}

		dir = home + strings.TrimPrefix(dir, "~")
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}

	return nil
}

func (r *Repl) printError(err error) {
	msg := Diagnostic(err)
	if r.cfg.Color && color.Enabled() {
		msg = color.Colorize(msg, color.FgRed)
	}

	fmt.Fprintln(r.stderr, msg)
}

func (r *Repl) loadHistory(ctx context.Context, line *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}

	f, err := config.FsFactory().Open(r.cfg.HistoryFile)
	if err != nil {
		ctxlog.Debug(ctx, "no history to load", "path", r.cfg.HistoryFile, "error", err)
		return
	}

	defer f.Close() //nolint:errcheck

	if _, err := line.ReadHistory(f); err != nil {
		ctxlog.Warn(ctx, "could not read history", "path", r.cfg.HistoryFile, "error", err)
	}
}

func (r *Repl) saveHistory(ctx context.Context, line *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}

	var buf bytes.Buffer

	if _, err := line.WriteHistory(&buf); err != nil {
		ctxlog.Warn(ctx, "could not serialize history", "error", err)
		return
	}

	data := truncateHistory(buf.String(), r.cfg.HistorySize)

	if err := afero.WriteFile(config.FsFactory(), r.cfg.HistoryFile, []byte(data), 0o600); err != nil {
		ctxlog.Warn(ctx, "could not save history", "path", r.cfg.HistoryFile, "error", err)
	}
}

// truncateHistory keeps the most recent limit lines.
func truncateHistory(history string, limit int) string {
	if limit <= 0 {
		return history
	}

	lines := strings.Split(strings.TrimRight(history, "\n"), "\n")
	if len(lines) <= limit {
		return history
	}

	return strings.Join(lines[len(lines)-limit:], "\n") + "\n"
}
