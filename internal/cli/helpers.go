package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/aretw0/semtoken/internal/presentation/tui"
)

// Interrupt is a context cancelled on SIGINT or SIGTERM that remembers which
// signal arrived.
type Interrupt struct {
	context.Context
	cancel   context.CancelFunc
	received atomic.Value
}

// OnInterrupt derives an Interrupt from parent. Call Stop to release the
// signal subscription.
func OnInterrupt(parent context.Context) *Interrupt {
	ctx, cancel := context.WithCancel(parent)
	in := &Interrupt{Context: ctx, cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			in.received.Store(sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return in
}

// Stop cancels the context and stops listening for signals.
func (in *Interrupt) Stop() {
	in.cancel()
}

// Signal returns the signal that cancelled the context, or nil.
func (in *Interrupt) Signal() os.Signal {
	sig, _ := in.received.Load().(os.Signal)
	return sig
}

// IsInterrupted reports whether err means the user gave up rather than
// something failing: an aborted prompt or a cancelled context.
func IsInterrupted(err error) bool {
	return errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled)
}
