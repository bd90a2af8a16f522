package daemon

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/ratelimit"
	"github.com/roasbeef/nowhere/internal/twitter"
)

// RawJob is one unprocessed search result queued for the normalize loop,
// carrying the claim it was gathered in service of.
type RawJob struct {
	ClaimID   uuid.UUID
	ClaimText string
	Raw       twitter.RawArtifact
}

// SearchPollConfig parameterizes NewSearchPollLoop.
type SearchPollConfig struct {
	Store      persistence.Ref
	Limiter    ratelimit.Ref
	Client     twitter.Client
	Out        chan<- RawJob
	Interval   time.Duration
	LookbackBy time.Duration
}

// NewSearchPollLoop returns a supervisor.RunOnce that periodically issues a
// SearchCmd for every open claim, bounded by the "search" rate-limit
// bucket, and forwards each raw result to cfg.Out for the normalize loop to
// pick up. It runs until ctx is done, at which point it returns nil (clean
// completion, not a crash the supervisor should restart).
func NewSearchPollLoop(cfg SearchPollConfig) func(ctx context.Context) error {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.LookbackBy <= 0 {
		cfg.LookbackBy = cfg.Interval
	}

	return func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			if err := pollOnce(ctx, cfg); err != nil {
				log.Warnf("search poll cycle failed: %v", err)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}
}

func pollOnce(ctx context.Context, cfg SearchPollConfig) error {
	claims, err := cfg.Store.ListClaims(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, claim := range claims {
		if err := cfg.Limiter.Acquire(ctx, "search", 1); err != nil {
			return err
		}

		results, err := cfg.Client.Search(ctx, twitter.SearchCmd{
			Claim:    claim.Text,
			Query:    claim.Text,
			DateFrom: now.Add(-cfg.LookbackBy),
			DateTo:   now,
		})
		if err != nil {
			log.Warnf("search failed for claim %s: %v", claim.ID, err)
			continue
		}

		for _, raw := range results {
			job := RawJob{ClaimID: claim.ID, ClaimText: claim.Text, Raw: raw}
			select {
			case cfg.Out <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
