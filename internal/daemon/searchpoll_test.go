package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roasbeef/nowhere/internal/actorcore"
	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/ratelimit"
	"github.com/roasbeef/nowhere/internal/twitter"
)

func newPersistenceRef(t *testing.T, claims []persistence.Claim) persistence.Ref {
	ref, _ := newPersistenceRefAndStore(t, claims)
	return ref
}

func newPersistenceRefAndStore(t *testing.T, claims []persistence.Claim) (persistence.Ref, *inMemoryStore) {
	t.Helper()
	store := &inMemoryStore{claims: claims}
	handle := actorcore.Spawn[persistence.Msg](persistence.NewStoreActor(store), 32)
	t.Cleanup(func() { handle.Addr().Close() })
	return persistence.NewRef(handle.Addr()), store
}

func newLimiterRef(t *testing.T) ratelimit.Ref {
	t.Helper()
	handle := actorcore.Spawn[ratelimit.Msg](ratelimit.NewLimiter(), 32)
	t.Cleanup(func() { handle.Addr().Close() })
	ref := ratelimit.NewRef(handle.Addr())
	require.NoError(t, ref.Upsert(context.Background(), "search", 1000, 1000))
	require.NoError(t, ref.Upsert(context.Background(), "llm", 1000, 1000))
	return ref
}

func TestSearchPollLoopForwardsResultsForEachClaim(t *testing.T) {
	claim := persistence.Claim{ID: uuid.New(), Text: "bridge collapse", CreatedAt: time.Now()}
	store := newPersistenceRef(t, []persistence.Claim{claim})
	limiter := newLimiterRef(t)
	client := &twitter.Fake{Results: []twitter.RawArtifact{
		{ExternalID: "1", Author: "a", Text: "saw it", URL: "https://x.com/1"},
	}}

	out := make(chan RawJob, 10)
	loop := NewSearchPollLoop(SearchPollConfig{
		Store: store, Limiter: limiter, Client: client, Out: out,
		Interval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = loop(ctx)

	select {
	case job := <-out:
		require.Equal(t, claim.ID, job.ClaimID)
		require.Equal(t, "1", job.Raw.ExternalID)
	default:
		t.Fatal("expected at least one forwarded job")
	}
}

func TestSearchPollLoopStopsOnContextCancellation(t *testing.T) {
	store := newPersistenceRef(t, nil)
	limiter := newLimiterRef(t)
	client := &twitter.Fake{}
	out := make(chan RawJob, 1)

	loop := NewSearchPollLoop(SearchPollConfig{
		Store: store, Limiter: limiter, Client: client, Out: out,
		Interval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
}
