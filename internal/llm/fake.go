package llm

import (
	"context"

	"github.com/google/uuid"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// Fake is an in-memory Client for tests: it never makes a network call and
// judges every raw artifact with the fixed Relevant and Credibility values
// in its fields. A zero Fake judges nothing relevant and leaves Credibility
// empty; NewFake returns one that judges everything relevant with unknown
// credibility.
type Fake struct {
	ChatResponse string
	ChatErr      error
	Relevant     bool
	Credibility  persistence.Credibility
	AnalyzeErr   error
}

var _ Client = (*Fake)(nil)

// NewFake returns a Fake that judges everything relevant with unknown
// credibility.
func NewFake() *Fake {
	return &Fake{Relevant: true, Credibility: persistence.CredibilityUnknown}
}

func (f *Fake) Chat(_ context.Context, _ string) (string, error) {
	return f.ChatResponse, f.ChatErr
}

func (f *Fake) AnalyzeRelevance(_ context.Context, _ string, raw RawArtifact) (persistence.Artifact, error) {
	if f.AnalyzeErr != nil {
		return persistence.Artifact{}, f.AnalyzeErr
	}

	claimID, err := uuid.Parse(raw.ClaimID)
	if err != nil {
		return persistence.Artifact{}, err
	}

	return persistence.Artifact{
		ClaimID:        claimID,
		Source:         raw.Source,
		ExternalID:     raw.ExternalID,
		Author:         raw.Author,
		Text:           raw.Text,
		URL:            raw.URL,
		Credibility:    f.Credibility,
		ClaimRelevance: f.Relevant,
	}, nil
}
