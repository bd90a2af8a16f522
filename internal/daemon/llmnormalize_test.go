package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roasbeef/nowhere/internal/llm"
	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/twitter"
)

func TestLLMNormalizeLoopUpsertsAnalyzedArtifact(t *testing.T) {
	claimID := uuid.New()
	ref, store := newPersistenceRefAndStore(t, nil)
	limiter := newLimiterRef(t)
	client := &llm.Fake{Relevant: true, Credibility: persistence.CredibilityStrong}

	in := make(chan RawJob, 1)
	loop := NewLLMNormalizeLoop(LLMNormalizeConfig{
		Store: ref, Limiter: limiter, Client: client, In: in,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop(ctx) }()

	in <- RawJob{
		ClaimID:   claimID,
		ClaimText: "bridge collapse",
		Raw: twitter.RawArtifact{
			ExternalID: "1", Author: "witness", Text: "saw it", URL: "https://x.com/1",
		},
	}

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	got := store.snapshot()[0]
	require.Equal(t, claimID, got.ClaimID)
	require.True(t, got.ClaimRelevance)
	require.Equal(t, persistence.CredibilityStrong, got.Credibility)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
}

func TestLLMNormalizeLoopStopsOnClosedChannel(t *testing.T) {
	ref, _ := newPersistenceRefAndStore(t, nil)
	limiter := newLimiterRef(t)
	client := &llm.Fake{}

	in := make(chan RawJob)
	loop := NewLLMNormalizeLoop(LLMNormalizeConfig{
		Store: ref, Limiter: limiter, Client: client, In: in,
	})

	done := make(chan error, 1)
	go func() { done <- loop(context.Background()) }()
	close(in)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after input channel closed")
	}
}
