package ratelimit

import (
	"context"

	"github.com/roasbeef/nowhere/internal/actorcore"
)

// Ref is a convenience wrapper over an Addr[Msg] giving callers plain
// function-call ergonomics instead of building messages and reply channels
// by hand.
type Ref struct {
	addr actorcore.Addr[Msg]
}

// NewRef wraps addr.
func NewRef(addr actorcore.Addr[Msg]) Ref {
	return Ref{addr: addr}
}

// Upsert creates or replaces the bucket configuration for key, blocking
// until the limiter actor has processed it.
func (r Ref) Upsert(ctx context.Context, key Key, qps float64, burst int) error {
	reply := make(chan error, 1)
	if err := r.addr.Send(ctx, Upsert{Key: key, QPS: qps, Burst: burst, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Acquire blocks until cost tokens are available on key, per the bucket's
// configured rate, or ctx is done first.
func (r Ref) Acquire(ctx context.Context, key Key, cost int) error {
	reply := make(chan struct{}, 1)
	if err := r.addr.Send(ctx, Acquire{Key: key, Cost: cost, Reply: reply}); err != nil {
		return err
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
