package actorsys

import (
	"context"
	"sync"
)

// System tracks background tasks and owns the shutdown broadcast they select
// on. It is the Go analogue of a JoinSet paired with a broadcast sender: no
// task is ever forcibly canceled, every tracked task is simply awaited.
type System struct {
	notifier *Notifier

	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
}

// NewSystem returns a System with a fresh, unfired shutdown notifier.
func NewSystem() *System {
	return &System{notifier: NewNotifier()}
}

// ShutdownNotifier returns a fresh subscriber receiver for the shutdown
// broadcast.
func (s *System) ShutdownNotifier() <-chan struct{} {
	return s.notifier.Subscribe()
}

// ShutdownHandle returns a clonable handle over the shutdown broadcast.
func (s *System) ShutdownHandle() Handle {
	return NewHandle(s.notifier)
}

// Track registers a background task. fn is run in its own goroutine; its
// error, if any, is recorded and surfaced by the first call to
// GracefulShutdown.
func (s *System) Track(fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(); err != nil {
			s.mu.Lock()
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
	}()
}

// SignalShutdown fires the shutdown broadcast without waiting for tracked
// tasks to finish.
func (s *System) SignalShutdown() {
	s.notifier.Signal()
}

// GracefulShutdown fires the shutdown broadcast, then waits for every
// tracked task to finish or for ctx to be done, whichever comes first. It
// returns the first error encountered by any tracked task, or ctx.Err() if
// the deadline won the race. Shutdown itself never produces an error.
func (s *System) GracefulShutdown(ctx context.Context) error {
	s.SignalShutdown()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Errorf("graceful shutdown timed out; tasks may have leaked")
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) > 0 {
		return s.errs[0]
	}
	return nil
}
