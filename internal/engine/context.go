// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/lish/internal/ctxlog"
)

// Proc is one realized pipeline stage: a spawned OS process together with
// the pipe read ends the parent retained for it.
type Proc struct {
	// Process is the spawned OS process handle.
	Process *os.Process

	// stdout is the read end of the captured stdout pipe. It is nil when
	// stdout was redirected to a file, and is nil-ed again when the next
	// pipeline stage consumes it as its stdin (move semantics, single
	// consumer).
	stdout *os.File
	// stderr is the read end of the captured stderr pipe.
	stderr *os.File

	background bool
	waited     bool
}

// takeStdout transfers ownership of the captured stdout read end to the
// caller. Subsequent calls return nil: the handle is consumed exactly once.
func (p *Proc) takeStdout() *os.File {
	f := p.stdout
	p.stdout = nil

	return f
}

// Background reports whether this stage was marked by a background operator.
func (p *Proc) Background() bool {
	return p.background
}

// ExecutionContext accumulates the processes spawned while executing one
// command tree, in left-to-right depth-first order, plus the ambient
// pipe-connect flag set while descending into a Pipe node. It exclusively
// owns every handle it holds until Close.
type ExecutionContext struct {
	procs []*Proc

	// pipeNext directs the next spawned command to connect its stdin to the
	// previous command's stdout.
	pipeNext bool
}

// NewExecutionContext creates an empty context for one execution.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{}
}

func (ec *ExecutionContext) add(p *Proc) {
	ec.procs = append(ec.procs, p)
}

// Len returns the number of spawned processes.
func (ec *ExecutionContext) Len() int {
	return len(ec.procs)
}

// Last returns the most recently spawned process, or nil.
func (ec *ExecutionContext) Last() *Proc {
	if len(ec.procs) == 0 {
		return nil
	}

	return ec.procs[len(ec.procs)-1]
}

// TakeLast removes and returns the most recently spawned process, or nil.
// The caller assumes responsibility for waiting on it.
func (ec *ExecutionContext) TakeLast() *Proc {
	if len(ec.procs) == 0 {
		return nil
	}

	p := ec.procs[len(ec.procs)-1]
	ec.procs = ec.procs[:len(ec.procs)-1]

	return p
}

// Close reaps every process still owned by the context and closes the pipe
// ends retained for them. Stages that have not been waited on are killed
// first so that teardown cannot block behind a long-running process; killing
// an already-exited process is not an error. Close is the no-zombie
// guarantee for every exit path.
func (ec *ExecutionContext) Close() error {
	var result *multierror.Error

	for _, p := range ec.procs {
		if p.stdout != nil {
			if err := p.stdout.Close(); err != nil {
				result = multierror.Append(result, err)
			}

			p.stdout = nil
		}

		if p.stderr != nil {
			if err := p.stderr.Close(); err != nil {
				result = multierror.Append(result, err)
			}

			p.stderr = nil
		}

		if p.waited || p.Process == nil {
			continue
		}

		killProc(context.Background(), p.Process)

		if _, err := p.Process.Wait(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			result = multierror.Append(result, err)
		}

		p.waited = true
	}

	ec.procs = nil

	return result.ErrorOrNil()
}

// killProc kills the process, tolerating one that has already exited.
func killProc(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Debug(ctx, "process killed", "pid", ps.Pid)
}
