package actorcore

import (
	"context"
	"fmt"
)

// Context is passed to every Handle call. It exposes the actor's own address
// (so a handler can enqueue a message to itself, or hand out clones to
// peers) and a stop flag the handler may set to request termination after
// the current message finishes processing.
type Context[M any] struct {
	self Addr[M]
	stop bool
}

// Self returns a clone of the actor's own address.
func (c *Context[M]) Self() Addr[M] {
	return c.self.Clone()
}

// Stop requests that the actor terminate cleanly after the current message.
func (c *Context[M]) Stop() {
	c.stop = true
}

// Handler is the operation an actor implements: handle one message, given
// mutable access to the actor's context. Returning an error is terminal for
// the actor; the main loop exits and the error surfaces through the Handle's
// Join.
type Handler[M any] interface {
	Handle(ctx context.Context, msg M, actx *Context[M]) error
}

// HandlerFunc adapts a plain function to Handler, for simple or generated
// actors that do not need their own named type.
type HandlerFunc[M any] func(ctx context.Context, msg M, actx *Context[M]) error

func (f HandlerFunc[M]) Handle(ctx context.Context, msg M, actx *Context[M]) error {
	return f(ctx, msg, actx)
}

// Handle is returned when an actor starts: its address, and a join function
// that resolves once the actor's task has stopped.
type Handle[M any] struct {
	addr Addr[M]
	done chan error
}

// Addr returns the handle's address. This is the one producer reference the
// Handle owns; closing it (directly, or via the caller's own clone of it)
// lets the mailbox close once no other address is outstanding. Call Clone
// on the result before handing it to more than one peer.
func (h *Handle[M]) Addr() Addr[M] {
	return h.addr
}

// Join blocks until the actor's task stops, returning its terminal error (nil
// on clean stop), or ctx.Err() if ctx is done first.
func (h *Handle[M]) Join(ctx context.Context) error {
	select {
	case err := <-h.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reserved is a pre-created (address, mailbox) pair whose task has not yet
// started. It exists to break wiring cycles: an address can be handed to
// peer actors before the actor itself is constructed.
type Reserved[M any] struct {
	name    string
	mb      *Mailbox[M]
	addr    Addr[M]
	started bool
}

// Reserve creates a mailbox of the given capacity and an address over it,
// without starting any task. Sends against the returned Reserved's Addr
// queue up to capacity.
func Reserve[M any](name string, capacity int) *Reserved[M] {
	mb := newMailbox[M](capacity)
	return &Reserved[M]{
		name: name,
		mb:   mb,
		addr: newAddr(mb),
	}
}

// Name returns the name this Reserved was created under.
func (r *Reserved[M]) Name() string {
	return r.name
}

// Addr returns a clone of the reserved address. Safe to call any number of
// times, including before Start.
func (r *Reserved[M]) Addr() Addr[M] {
	return r.addr.Clone()
}

// Start launches the actor's task with no shutdown signal configured.
// Calling Start or StartWithShutdown twice on the same Reserved is a
// programmer error and panics.
func (r *Reserved[M]) Start(handler Handler[M]) *Handle[M] {
	return r.StartWithShutdown(handler, nil)
}

// StartWithShutdown launches the actor's task, additionally selecting on
// shutdown: a closed or signaled shutdown channel stops the actor cleanly
// after its current message, without requiring its mailbox to drain first.
func (r *Reserved[M]) StartWithShutdown(handler Handler[M], shutdown <-chan struct{}) *Handle[M] {
	if r.started {
		panic(ErrReservedAlreadyStarted)
	}
	r.started = true

	done := make(chan error, 1)
	go runActor(handler, r.mb, shutdown, done)

	return &Handle[M]{addr: r.addr.Clone(), done: done}
}

// Spawn creates a mailbox, starts the actor immediately, and returns its
// handle. Equivalent to Reserve followed immediately by Start.
func Spawn[M any](handler Handler[M], capacity int) *Handle[M] {
	return SpawnWithShutdown(handler, capacity, nil)
}

// SpawnWithShutdown is Spawn with a shutdown channel wired in from the
// start.
func SpawnWithShutdown[M any](handler Handler[M], capacity int, shutdown <-chan struct{}) *Handle[M] {
	r := Reserve[M](fmt.Sprintf("anon-%p", handler), capacity)
	return r.StartWithShutdown(handler, shutdown)
}

// runActor is the per-actor main loop: construct a Context, range over the
// mailbox (which stops yielding on shutdown or mailbox close), dispatch each
// message to the handler, and stop on handler error or a Context.Stop call.
func runActor[M any](
	handler Handler[M], mb *Mailbox[M],
	shutdown <-chan struct{}, done chan<- error,
) {

	actx := &Context[M]{self: selfAddr(mb)}

	var handlerErr error
	for msg := range mb.Receive(shutdown) {
		if err := handler.Handle(context.Background(), msg, actx); err != nil {
			log.Errorf("actor returned error; stopping: %v", err)
			handlerErr = err
			break
		}
		if actx.stop {
			break
		}
	}

	done <- handlerErr
}
