package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/roasbeef/nowhere/internal/actorcore"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestRef(t *testing.T) Ref {
	t.Helper()
	handle := actorcore.Spawn[Msg](NewLimiter(), 16)
	t.Cleanup(func() { handle.Addr().Close() })
	return NewRef(handle.Addr())
}

// TestRateLimitSteadyState covers end-to-end scenario 3: qps=2, burst=1,
// five back-to-back acquires of cost 1 land at roughly 0, 0.5, 1.0, 1.5, 2.0
// seconds.
func TestRateLimitSteadyState(t *testing.T) {
	ref := newTestRef(t)
	ctx := context.Background()
	require.NoError(t, ref.Upsert(ctx, "k", 2, 1))

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, ref.Acquire(ctx, "k", 1))
		elapsed := time.Since(start)
		want := time.Duration(i) * 500 * time.Millisecond
		require.InDelta(t, want.Seconds(), elapsed.Seconds(), 0.2)
	}
}

// TestRateLimitBurst covers end-to-end scenario 4: qps=1, burst=3, three
// acquires land immediately, a fourth waits roughly 1 second.
func TestRateLimitBurst(t *testing.T) {
	ref := newTestRef(t)
	ctx := context.Background()
	require.NoError(t, ref.Upsert(ctx, "k", 1, 3))

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, ref.Acquire(ctx, "k", 1))
	}
	require.InDelta(t, 0, time.Since(start).Seconds(), 0.2)

	require.NoError(t, ref.Acquire(ctx, "k", 1))
	require.InDelta(t, 1.0, time.Since(start).Seconds(), 0.3)
}

func TestUpsertRejectsNonPositiveQPS(t *testing.T) {
	ref := newTestRef(t)
	ctx := context.Background()

	err := ref.Upsert(ctx, "k", 0, 5)
	require.ErrorIs(t, err, ErrNonPositiveQPS)

	err = ref.Upsert(ctx, "k", -1, 5)
	require.ErrorIs(t, err, ErrNonPositiveQPS)
}

func TestAcquireOnUnknownKeyUsesDefaults(t *testing.T) {
	ref := newTestRef(t)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, ref.Acquire(ctx, "never-upserted", 1))
	require.InDelta(t, 0, time.Since(start).Seconds(), 0.2)
}

// TestBucketNeverExceedsBurstOrGoesNegative is a property check for
// invariant 4: tokens never go negative or exceed burst across a sequence
// of acquires on one key.
func TestBucketNeverExceedsBurstOrGoesNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qps := rapid.Float64Range(1, 50).Draw(t, "qps")
		burst := rapid.IntRange(1, 20).Draw(t, "burst")

		b := newBucket(qps, burst, time.Now())

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			cost := rapid.IntRange(1, burst).Draw(t, "cost")
			b.acquire(cost, b.last.Add(time.Duration(
				rapid.IntRange(0, 2000).Draw(t, "dtMillis"),
			)*time.Millisecond))

			require.GreaterOrEqual(t, b.tokens, 0.0)
			require.LessOrEqual(t, b.tokens, b.burst+1e-9)
		}
	})
}
