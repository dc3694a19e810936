// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"

	"github.com/matt-FFFFFF/lish/internal/ctxlog"
	"github.com/matt-FFFFFF/lish/internal/parser"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrCommandNotFound is returned when the executable cannot be resolved in PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrCouldNotOpenRedirect is returned when the file named in a redirect could not be opened.
	ErrCouldNotOpenRedirect = errors.New("could not open redirect file")
	// ErrNoPipeSource is returned when a pipe-connected stage has no previous
	// stage stdout to read from, such as when the previous stage's stdout was
	// redirected to a file or already consumed.
	ErrNoPipeSource = errors.New("previous pipeline stage does not expose standard output")
)

// lookPath resolves an executable name in PATH. It is a variable so tests
// can stub it.
var lookPath = exec.LookPath

// Engine walks one command tree and spawns its processes.
type Engine struct {
	root parser.Node
}

// New creates an engine for the given tree.
func New(root parser.Node) *Engine {
	return &Engine{
		root: root,
	}
}

// streams carries redirect-substituted standard streams down the traversal.
// A nil field means the stage uses its default wiring.
type streams struct {
	in  *os.File
	out *os.File
}

// Execute realizes the tree as OS processes. On success the returned context
// owns every spawned process; the caller drains the last stage and then
// closes the context. On failure the error is surfaced after the context has
// reaped any processes spawned before the failure.
func (e *Engine) Execute(ctx context.Context) (*ExecutionContext, error) {
	ec := NewExecutionContext()

	if err := e.executeNode(ctx, e.root, ec, streams{}); err != nil {
		return nil, errors.Join(err, ec.Close())
	}

	return ec, nil
}

func (e *Engine) executeNode(ctx context.Context, n parser.Node, ec *ExecutionContext, sio streams) error {
	switch n := n.(type) {
	case *parser.Command:
		return e.spawn(ctx, n, ec, sio)

	case *parser.Redirect:
		f, err := openRedirect(n.File, n.Mode)
		if err != nil {
			return err
		}

		// The parent's copy closes once the command below has been spawned;
		// the child holds its own descriptor.
		defer f.Close() //nolint:errcheck

		switch n.Mode {
		case parser.Read:
			sio.in = f
		default:
			sio.out = f
		}

		return e.executeNode(ctx, n.Command, ec, sio)

	case *parser.Pipe:
		if err := e.executeNode(ctx, n.Left, ec, sio); err != nil {
			return err
		}

		ec.pipeNext = true

		if err := e.executeNode(ctx, n.Right, ec, sio); err != nil {
			ec.pipeNext = false
			return err
		}

		ec.pipeNext = false

		return nil

	case *parser.Background:
		// Advisory: the stage is spawned exactly like a foreground one and
		// the marker is surfaced through Proc.Background.
		if err := e.executeNode(ctx, n.Command, ec, sio); err != nil {
			return err
		}

		if p := ec.Last(); p != nil {
			p.background = true
		}

		return nil
	}

	return fmt.Errorf("unknown node type %T", n)
}

// spawn starts one pipeline stage. Its stream wiring has exactly three
// reachable configurations: standalone (stdout/stderr captured by pipes),
// pipe-connected stdin, or redirect-substituted stream. When a stage is both
// pipe-connected and stdin-redirected, the redirect wins.
func (e *Engine) spawn(ctx context.Context, cmd *parser.Command, ec *ExecutionContext, sio streams) error {
	logger := ctxlog.Logger(ctx)
	logger.Debug("spawning command", "name", cmd.Name, "args", cmd.Args, "pipeConnected", ec.pipeNext)

	path, err := lookPath(cmd.Name)
	if err != nil {
		return errors.Join(ErrCommandNotFound, err)
	}

	proc := &Proc{}

	// Descriptors the parent must close once the child holds its own copies.
	var closeAfterSpawn []*os.File

	closeAll := func(files []*os.File) {
		for _, f := range files {
			_ = f.Close()
		}
	}

	var stdin *os.File

	switch {
	case sio.in != nil:
		// An explicit redirect beats the pipe connection; the previous
		// stage's stdout stays with the context and is closed on teardown.
		stdin = sio.in

	case ec.pipeNext:
		prev := ec.Last()
		if prev == nil {
			return ErrNoPipeSource
		}

		stdin = prev.takeStdout()
		if stdin == nil {
			return ErrNoPipeSource
		}

		closeAfterSpawn = append(closeAfterSpawn, stdin)

	default:
		stdin = os.Stdin
	}

	stdout := sio.out
	if stdout == nil {
		rOut, wOut, err := os.Pipe()
		if err != nil {
			closeAll(closeAfterSpawn)
			return errors.Join(ErrFailedToCreatePipe, err)
		}

		proc.stdout = rOut
		stdout = wOut
		closeAfterSpawn = append(closeAfterSpawn, wOut)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(closeAfterSpawn)

		if proc.stdout != nil {
			_ = proc.stdout.Close()
		}

		return errors.Join(ErrFailedToCreatePipe, err)
	}

	proc.stderr = rErr
	closeAfterSpawn = append(closeAfterSpawn, wErr)

	argv := slices.Concat([]string{cmd.Name}, cmd.Args)

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{stdin, stdout, wErr},
	})

	closeAll(closeAfterSpawn)

	if err != nil {
		if proc.stdout != nil {
			_ = proc.stdout.Close()
		}

		_ = proc.stderr.Close()

		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid, "path", path)

	proc.Process = ps
	ec.add(proc)

	return nil
}

// openRedirect opens the file named in a redirect under the given mode.
// Failures are fatal for the command being built: no process is spawned.
func openRedirect(name string, mode parser.RedirectMode) (*os.File, error) {
	var (
		f   *os.File
		err error
	)

	switch mode {
	case parser.Read:
		f, err = os.Open(name)
	case parser.Write:
		f, err = os.Create(name)
	case parser.Append:
		f, err = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	default:
		return nil, fmt.Errorf("unknown redirect mode %v", mode)
	}

	if err != nil {
		return nil, errors.Join(ErrCouldNotOpenRedirect, err)
	}

	return f, nil
}
