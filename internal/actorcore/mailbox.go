package actorcore

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
)

// Mailbox is a bounded, single-consumer, multi-producer FIFO queue of
// messages for one actor. It is never used directly by callers; actors hand
// out Addr values that wrap it.
type Mailbox[M any] struct {
	ch chan M

	mu        sync.RWMutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// newMailbox creates a mailbox with the given capacity. A non-positive
// capacity is floored to 1: a zero-capacity channel would make every send
// synchronous with a receive, which defeats the "bounded FIFO" contract.
func newMailbox[M any](capacity int) *Mailbox[M] {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox[M]{ch: make(chan M, capacity)}
}

// Capacity returns the mailbox's maximum number of buffered messages.
func (mb *Mailbox[M]) Capacity() int {
	return cap(mb.ch)
}

// send blocks until the message is enqueued, the mailbox closes, or ctx is
// done. The RLock is held for the whole attempt so a concurrent Close cannot
// close the channel out from under an in-flight send.
func (mb *Mailbox[M]) send(ctx context.Context, msg M) error {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if mb.closed.Load() {
		return &SendError[M]{Msg: msg, Err: ErrMailboxClosed}
	}
	select {
	case mb.ch <- msg:
		return nil
	default:
	}
	select {
	case mb.ch <- msg:
		return nil
	case <-ctx.Done():
		return &SendError[M]{Msg: msg, Err: ctx.Err()}
	}
}

// trySend enqueues msg without blocking. It fails if the mailbox is closed
// or full.
func (mb *Mailbox[M]) trySend(msg M) error {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	if mb.closed.Load() {
		return &SendError[M]{Msg: msg, Err: ErrMailboxClosed}
	}
	select {
	case mb.ch <- msg:
		return nil
	default:
		return &SendError[M]{Msg: msg, Err: ErrMailboxFull}
	}
}

// Receive returns an iterator that yields messages until the mailbox closes
// or stop fires. A nil stop channel simply never fires (blocks forever),
// which is the correct "no shutdown configured" default for Go's nil-channel
// select semantics.
func (mb *Mailbox[M]) Receive(stop <-chan struct{}) iter.Seq[M] {
	return func(yield func(M) bool) {
		for {
			select {
			case <-stop:
				return
			case msg, ok := <-mb.ch:
				if !ok {
					return
				}
				if !yield(msg) {
					return
				}
			}
		}
	}
}

// Close closes the mailbox. It is safe to call more than once.
func (mb *Mailbox[M]) Close() {
	mb.closeOnce.Do(func() {
		mb.mu.Lock()
		defer mb.mu.Unlock()
		mb.closed.Store(true)
		close(mb.ch)
	})
}

// IsClosed reports whether the mailbox has been closed.
func (mb *Mailbox[M]) IsClosed() bool {
	return mb.closed.Load()
}
