package actorsys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestGracefulShutdownJoinsTrackedTasks covers end-to-end scenario 6: two
// tracked tasks that select on shutdown and exit cleanly when signaled.
func TestGracefulShutdownJoinsTrackedTasks(t *testing.T) {
	sys := NewSystem()

	for i := 0; i < 2; i++ {
		sys.Track(func() error {
			<-sys.ShutdownNotifier()
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sys.GracefulShutdown(ctx))
}

func TestGracefulShutdownPropagatesFirstError(t *testing.T) {
	sys := NewSystem()
	boom := errors.New("boom")

	sys.Track(func() error {
		<-sys.ShutdownNotifier()
		return boom
	})
	sys.Track(func() error {
		<-sys.ShutdownNotifier()
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.ErrorIs(t, sys.GracefulShutdown(ctx), boom)
}

// TestSignalIsIdempotentAndBroadcastsOnce covers invariant 7: a single
// signal suffices for every subscriber, and firing it twice is harmless.
func TestSignalIsIdempotentAndBroadcastsOnce(t *testing.T) {
	n := NewNotifier()

	subs := make([]<-chan struct{}, 5)
	for i := range subs {
		subs[i] = n.Subscribe()
	}

	n.Signal()
	n.Signal()

	for _, sub := range subs {
		select {
		case <-sub:
		case <-time.After(time.Second):
			t.Fatal("subscriber did not observe the signal")
		}
	}
}

func TestLateSubscribeAfterSignalObservesItImmediately(t *testing.T) {
	n := NewNotifier()
	n.Signal()

	select {
	case <-n.Subscribe():
	default:
		t.Fatal("late subscriber should see an already-fired signal immediately")
	}
}
