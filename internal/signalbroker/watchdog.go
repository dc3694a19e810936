// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/lish/internal/ctxlog"
)

// Watch monitors the signal channel. The first signal cancels the context,
// which kills and reaps any running pipeline stage. A second signal stops the
// watch and closes the channel; the caller exits immediately at that point.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	interrupted := false

	for sig := range sigCh {
		if !interrupted {
			ctxlog.Info(ctx, "watchdog", "detail", "received signal, interrupting running commands", "signal", sig.String())
			cancel()

			interrupted = true

			continue
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received second signal, terminating", "signal", sig.String())
		signal.Stop(sigCh)
		close(sigCh)

		return
	}
}
