package ratelimit

import (
	"context"
	"time"

	"github.com/roasbeef/nowhere/internal/actorcore"
)

// Limiter is the token-bucket rate-limiter actor's behavior. All bucket
// state is mutated only while handling a message, so no locking is needed
// inside it.
type Limiter struct {
	buckets map[Key]*bucket
}

// NewLimiter returns a fresh Limiter with no buckets configured.
func NewLimiter() *Limiter {
	return &Limiter{buckets: make(map[Key]*bucket)}
}

var _ actorcore.Handler[Msg] = (*Limiter)(nil)

// Handle dispatches Upsert and Acquire messages. It never blocks: Acquire's
// wait, if any, is handled by a detached goroutine so a single slow
// acquirer can never serialize the ones behind it.
func (l *Limiter) Handle(_ context.Context, msg Msg, _ *actorcore.Context[Msg]) error {
	switch m := msg.(type) {
	case Upsert:
		l.handleUpsert(m)
	case Acquire:
		l.handleAcquire(m)
	}
	return nil
}

func (l *Limiter) handleUpsert(m Upsert) {
	if m.QPS <= 0 {
		log.Debugf("rejecting upsert for key %q: qps %v <= 0", m.Key, m.QPS)
		replyErr(m.Reply, ErrNonPositiveQPS)
		return
	}
	l.buckets[m.Key] = newBucket(m.QPS, m.Burst, time.Now())
	replyErr(m.Reply, nil)
}

func (l *Limiter) handleAcquire(m Acquire) {
	b, ok := l.buckets[m.Key]
	if !ok {
		b = newBucket(defaultQPS, defaultBurst, time.Now())
		l.buckets[m.Key] = b
	}

	wait := b.acquire(m.Cost, time.Now())

	// Detach: the permit is delivered by an independent goroutine so the
	// actor's own mailbox loop is never blocked on a timer.
	go func(reply chan<- struct{}, wait time.Duration) {
		if wait > 0 {
			time.Sleep(wait)
		}
		// Best-effort: a dropped reply channel is not an error.
		select {
		case reply <- struct{}{}:
		default:
		}
	}(m.Reply, wait)
}

func replyErr(reply chan<- error, err error) {
	if reply == nil {
		return
	}
	select {
	case reply <- err:
	default:
	}
}
