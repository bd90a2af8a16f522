package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSuperviseRestartsOnFailureThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	shutdown := make(chan struct{})

	done := make(chan struct{})
	go func() {
		Supervise(context.Background(), shutdown, func(context.Context) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient failure")
			}
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervise did not return after eventual success")
	}
	require.Equal(t, int32(3), attempts.Load())
}

func TestSuperviseStopsOnShutdown(t *testing.T) {
	shutdown := make(chan struct{})
	started := make(chan struct{})

	done := make(chan struct{})
	go func() {
		Supervise(context.Background(), shutdown, func(context.Context) error {
			close(started)
			return errors.New("always fails")
		})
		close(done)
	}()

	<-started
	close(shutdown)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervise did not stop after shutdown")
	}
}
