package twitter

import "context"

// Fake is an in-memory Client for tests.
type Fake struct {
	Results []RawArtifact
	Err     error
}

var _ Client = (*Fake)(nil)

func (f *Fake) Search(_ context.Context, _ SearchCmd) ([]RawArtifact, error) {
	return f.Results, f.Err
}
