// Package signal provides signal handling for the skynet-loop CLI.
//
// Invocations are short-lived, but a contended advisory lock can make
// one wait; SIGINT and SIGTERM cancel the context driving that wait so
// the process never hangs on a stuck lock holder.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
// When a signal is received, it calls the onInterrupt callback (if
// non-nil), then cancels the context.
//
// The listening goroutine terminates when either a signal is received or
// the context is canceled.
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
		}
	}()
}
