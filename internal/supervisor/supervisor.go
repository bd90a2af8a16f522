package supervisor

import (
	"context"
	"time"
)

const (
	initialBackoff = 100 * time.Millisecond
	maxBackoff      = 30 * time.Second
)

// RunOnce is a fallible unit of long-running work. It should run until
// ctx is done or it fails; a nil return means clean, permanent completion
// (Supervise will not restart it), while a non-nil return is treated as a
// crash to restart after a backoff.
//
// Unlike the reference model, where a fresh future has to be produced by a
// factory on every restart (futures there are one-shot), a Go func value can
// simply be invoked again: each call is already "a fresh invocation" of the
// same unit of work, so no separate factory indirection is needed here.
type RunOnce func(ctx context.Context) error

// Supervise runs fn repeatedly with exponential backoff on failure, starting
// at 100ms and doubling up to a 30s ceiling, until fn succeeds or shutdown
// fires. It never gives up on its own: a caller that wants a "stop retrying
// after N failures" policy implements that outside, by canceling ctx or
// closing shutdown.
func Supervise(ctx context.Context, shutdown <-chan struct{}, fn RunOnce) {
	backoff := initialBackoff

	for {
		runCtx, cancel := context.WithCancel(ctx)
		result := make(chan error, 1)
		go func() {
			result <- fn(runCtx)
		}()

		select {
		case <-shutdown:
			cancel()
			return

		case err := <-result:
			cancel()
			if err == nil {
				return
			}

			log.Warnf("supervised task failed, retrying in %s: %v",
				backoff, err)

			select {
			case <-shutdown:
				return
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}
