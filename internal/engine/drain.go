// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/matt-FFFFFF/lish/internal/ctxlog"
)

var (
	// ErrNothingToDrain is returned when the context holds no process.
	ErrNothingToDrain = errors.New("no process to drain")
	// ErrInterrupted is returned when the final stage was killed because the
	// context was cancelled before it exited.
	ErrInterrupted = errors.New("interrupted")
)

// Drain takes the last process in the context (the effective output of the
// whole pipeline), copies its stdout and stderr to the given writers on
// their own goroutines, and blocks until the process exits. The copy
// goroutines start before the wait, so a final stage that emits more than
// one OS pipe buffer cannot deadlock the caller. It returns the process's
// exit code.
//
// Cancelling ctx kills the final stage; Drain then returns ErrInterrupted.
func Drain(ctx context.Context, ec *ExecutionContext, stdout, stderr io.Writer) (int, error) {
	p := ec.TakeLast()
	if p == nil {
		return -1, ErrNothingToDrain
	}

	var wg sync.WaitGroup

	if p.stdout != nil {
		wg.Add(1)

		go func(r io.Reader) {
			defer wg.Done()

			_, _ = io.Copy(stdout, r)
		}(p.stdout)
	}

	if p.stderr != nil {
		wg.Add(1)

		go func(r io.Reader) {
			defer wg.Done()

			_, _ = io.Copy(stderr, r)
		}(p.stderr)
	}

	// Watchdog: kill the process if the context is cancelled while we wait.
	done := make(chan struct{})
	wasKilled := make(chan error, 1)

	go func() {
		select {
		case <-ctx.Done():
			ctxlog.Debug(ctx, "context done, killing final stage", "pid", p.Process.Pid)
			killProc(ctx, p.Process)

			select {
			case wasKilled <- ErrInterrupted:
			case <-done:
				// Process finished before the kill result was consumed.
			}

		case <-done:
		}
	}()

	state, err := p.Process.Wait()
	p.waited = true

	var killErr error

	if ctx.Err() != nil {
		// The watchdog is guaranteed to deliver once the context is done.
		killErr = <-wasKilled
	} else {
		select {
		case killErr = <-wasKilled:
		default:
		}
	}

	// Cancellation can land just after a normal exit; a stage that completed
	// on its own keeps its exit code.
	if state != nil && state.Exited() {
		killErr = nil
	}

	close(done)

	// The copiers finish once the child's write ends close on exit.
	wg.Wait()

	if p.stdout != nil {
		_ = p.stdout.Close()
		p.stdout = nil
	}

	if p.stderr != nil {
		_ = p.stderr.Close()
		p.stderr = nil
	}

	if killErr != nil {
		return -1, errors.Join(err, killErr)
	}

	if err != nil {
		return -1, err
	}

	return state.ExitCode(), nil
}
