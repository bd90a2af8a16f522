// Package twitter provides the narrow Twitter/X search port consumed by the
// search-poll supervised loop. The actor runtime never imports this package.
package twitter

import (
	"context"
	"time"
)

// SearchCmd is one search request: find posts matching Query, authored
// within [DateFrom, DateTo), gathered in service of Claim.
type SearchCmd struct {
	Claim    string
	Query    string
	DateFrom time.Time
	DateTo   time.Time
}

// RawArtifact is one unprocessed search result.
type RawArtifact struct {
	ExternalID string
	Author     string
	Text       string
	URL        string
}

// Client is the narrow port the search-poll loop depends on.
type Client interface {
	Search(ctx context.Context, cmd SearchCmd) ([]RawArtifact, error)
}
