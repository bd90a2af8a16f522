// Package llm provides the narrow LLM client port consumed by the
// LLM-normalize supervised loop. It is deliberately thin: the actor runtime
// never imports it directly, only the loop that drives UpsertArtifact does.
package llm

import (
	"context"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// osintSystemPrompt primes the model for the relevance/credibility judgment
// calls below.
const osintSystemPrompt = `You are an expert OSINT analyst with extensive experience in digital investigations, social media analysis, and evidence evaluation.

Be precise and factual. Prioritize verifiable facts over speculation. Flag potential misinformation or unreliable sources.`

// RawArtifact is an unprocessed search result awaiting LLM normalization.
type RawArtifact struct {
	ClaimID    string
	Source     string
	ExternalID string
	Author     string
	Text       string
	URL        string
}

// Client is the narrow port the LLM-normalize loop depends on. An
// implementation backs it with a concrete model provider; tests use an
// in-memory fake.
type Client interface {
	// Chat sends prompt (with osintSystemPrompt as the system message) and
	// returns the model's raw text response.
	Chat(ctx context.Context, prompt string) (string, error)

	// AnalyzeRelevance produces the normalized persistence.Artifact for raw,
	// judging whether it is relevant to claim and rating its credibility.
	// The implementations in this package do not extract entities: the
	// returned Artifact's Entities is empty.
	AnalyzeRelevance(ctx context.Context, claim string, raw RawArtifact) (persistence.Artifact, error)
}
