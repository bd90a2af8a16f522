package actorcore

import (
	"context"
	"sync/atomic"
)

// Addr is a cheaply-clonable producer handle onto an actor's mailbox. Go has
// no destructors, so unlike the reference model's reference-counted sender,
// an Addr's producer count is tracked explicitly: Clone increments it and
// Close decrements it, closing the underlying mailbox only when the count
// reaches zero.
type Addr[M any] struct {
	mb   *Mailbox[M]
	refs *atomic.Int64
}

// newAddr builds the template address stored inside a Reserved. It starts
// its producer count at zero: this template is never handed out directly
// (every public accessor clones it), so it must not itself hold a phantom
// reference that would keep the mailbox open forever.
func newAddr[M any](mb *Mailbox[M]) Addr[M] {
	return Addr[M]{mb: mb, refs: &atomic.Int64{}}
}

// selfAddr builds the weak handle installed on a Context. It intentionally
// carries no refs counter: it exists so a handler can enqueue to its own
// mailbox, not to keep that mailbox alive, so it must not prevent "all
// producer addresses dropped" from being observed once every real Addr is
// closed.
func selfAddr[M any](mb *Mailbox[M]) Addr[M] {
	return Addr[M]{mb: mb}
}

// Clone returns a new handle onto the same mailbox, incrementing the
// producer count. Cloning a weak self-address (see selfAddr) yields another
// weak address.
func (a Addr[M]) Clone() Addr[M] {
	if a.refs != nil {
		a.refs.Add(1)
	}
	return a
}

// Send enqueues msg, awaiting capacity if the mailbox is full. It returns a
// *SendError[M] carrying the original message if the mailbox is closed or
// ctx is done before capacity frees up.
func (a Addr[M]) Send(ctx context.Context, msg M) error {
	return a.mb.send(ctx, msg)
}

// TrySend enqueues msg without blocking. It fails immediately, returning the
// original message, if the mailbox is full or closed.
func (a Addr[M]) TrySend(msg M) error {
	return a.mb.trySend(msg)
}

// Capacity returns the mailbox's maximum buffered message count.
func (a Addr[M]) Capacity() int {
	return a.mb.Capacity()
}

// Close drops this handle. When the last clone of an Addr is closed, the
// underlying mailbox closes, which lets the actor's main loop exit cleanly
// once it has drained whatever remains buffered. Closing a weak self-address
// is a no-op.
func (a Addr[M]) Close() {
	if a.refs == nil {
		return
	}
	if a.refs.Add(-1) == 0 {
		a.mb.Close()
	}
}
