package builder

import (
	"context"
	"time"

	"github.com/roasbeef/nowhere/internal/actorcore"
	"github.com/roasbeef/nowhere/internal/actorsys"
	"github.com/roasbeef/nowhere/internal/registry"
)

// shutdownGrace bounds how long RunUntilSignal waits for tracked tasks to
// finish after addresses are dropped, before giving up and reporting a
// timeout.
const shutdownGrace = 30 * time.Second

// Builder solves the chicken-and-egg problem of actors needing each other's
// addresses before either is constructed: reserve every named actor's
// address up front, wire the concrete actors against those already-published
// addresses, start them, then wait for a termination signal and join
// everything cleanly.
type Builder struct {
	sys *actorsys.System
	reg *registry.Registry

	reserved map[string]struct{}
	closers  []func()
}

// New returns an empty Builder with a fresh System and Registry.
func New() *Builder {
	return &Builder{
		sys:      actorsys.NewSystem(),
		reg:      registry.New(),
		reserved: make(map[string]struct{}),
	}
}

// Registry exposes the builder's registry for callers that need a raw
// lookup by type rather than the generic Addr helper below.
func (b *Builder) Registry() *registry.Registry {
	return b.reg
}

// ShutdownHandle returns a clonable handle over the builder's shutdown
// broadcast, for components that need to observe it outside of an actor
// (e.g. a supervised poll loop).
func (b *Builder) ShutdownHandle() actorsys.Handle {
	return b.sys.ShutdownHandle()
}

// Reserve creates a mailbox of capacity size for message type M, publishes
// its address under name in the registry, and returns the Reserved so its
// concrete actor can be constructed and started later. Reserving the same
// name twice on one Builder is a programmer error and panics.
func Reserve[M any](b *Builder, name string, capacity int) *actorcore.Reserved[M] {
	if _, ok := b.reserved[name]; ok {
		panic(ErrAlreadyReserved)
	}
	b.reserved[name] = struct{}{}

	r := actorcore.Reserve[M](name, capacity)

	published := r.Addr()
	registry.InsertTyped[actorcore.Addr[M]](b.reg, name, published)

	// The builder keeps its own reference as well as the published one, and
	// drops both in RunUntilSignal's phase 3 (Addr lookups clone their own
	// on top of the published one).
	ownAddr := r.Addr()
	b.closers = append(b.closers, published.Close, ownAddr.Close)

	return r
}

// Addr looks up the address published under name for message type M. A name
// that was never reserved, or was reserved for a different message type,
// returns false rather than panicking. The returned address is a fresh
// clone: closing it is the caller's responsibility once it is done with it.
func Addr[M any](b *Builder, name string) (actorcore.Addr[M], bool) {
	addr, ok := registry.GetTyped[actorcore.Addr[M]](b.reg, name)
	if !ok {
		var zero actorcore.Addr[M]
		return zero, false
	}
	return addr.Clone(), true
}

// StartReserved launches r's actor with handler, wired to the builder's
// shutdown broadcast, and tracks its join so RunUntilSignal waits for it.
func StartReserved[M any](b *Builder, r *actorcore.Reserved[M], handler actorcore.Handler[M]) *actorcore.Handle[M] {
	handle := r.StartWithShutdown(handler, b.sys.ShutdownNotifier())
	b.sys.Track(func() error {
		return handle.Join(context.Background())
	})
	return handle
}

// RunUntilSignal blocks until external fires or the builder's own shutdown
// broadcast fires (whichever is first), then drops every address the
// builder itself holds (letting mailboxes close once actors release their
// own copies) and waits for every tracked actor to join, bounded by
// shutdownGrace.
func (b *Builder) RunUntilSignal(ctx context.Context, external <-chan struct{}) error {
	select {
	case <-external:
		log.Infof("external termination signal received")
	case <-b.sys.ShutdownNotifier():
		log.Infof("internal shutdown broadcast received")
	}

	for _, closeAddr := range b.closers {
		closeAddr()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
	defer cancel()

	return b.sys.GracefulShutdown(shutdownCtx)
}
