package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context that is canceled on the first shutdown
// signal. A running engine is killed through the context, so an interrupted
// conversion never leaves a word processor behind. Call stop() to release
// resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
