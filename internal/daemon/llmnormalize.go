package daemon

import (
	"context"

	"github.com/roasbeef/nowhere/internal/llm"
	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/ratelimit"
)

// LLMNormalizeConfig parameterizes NewLLMNormalizeLoop.
type LLMNormalizeConfig struct {
	Store   persistence.Ref
	Limiter ratelimit.Ref
	Client  llm.Client
	In      <-chan RawJob
}

// NewLLMNormalizeLoop returns a supervisor.RunOnce that drains raw search
// results queued by the search-poll loop, bounded by the "llm" rate-limit
// bucket, and tells the persistence actor to upsert the LLM-annotated
// result. It runs until ctx is done, at which point it returns nil.
func NewLLMNormalizeLoop(cfg LLMNormalizeConfig) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case job, ok := <-cfg.In:
				if !ok {
					return nil
				}
				if err := normalizeOne(ctx, cfg, job); err != nil {
					log.Warnf("normalize failed for claim %s artifact %s: %v",
						job.ClaimID, job.Raw.ExternalID, err)
				}
			}
		}
	}
}

func normalizeOne(ctx context.Context, cfg LLMNormalizeConfig, job RawJob) error {
	if err := cfg.Limiter.Acquire(ctx, "llm", 1); err != nil {
		return err
	}

	artifact, err := cfg.Client.AnalyzeRelevance(ctx, job.ClaimText, llm.RawArtifact{
		ClaimID:    job.ClaimID.String(),
		Source:     "twitter",
		ExternalID: job.Raw.ExternalID,
		Author:     job.Raw.Author,
		Text:       job.Raw.Text,
		URL:        job.Raw.URL,
	})
	if err != nil {
		return err
	}

	return cfg.Store.UpsertArtifact(ctx, artifact)
}
