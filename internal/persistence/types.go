package persistence

import (
	"time"

	"github.com/google/uuid"
)

// Credibility is the LLM's coarse assessment of a source's reliability.
type Credibility string

const (
	CredibilityStrong  Credibility = "strong"
	CredibilityWeak    Credibility = "weak"
	CredibilityUnknown Credibility = "unknown"
)

// Claim is the unit of investigation: a statement the assistant is trying
// to corroborate or refute.
type Claim struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Entity is a named entity extracted from an artifact's text: a person,
// organization, location, or handle.
type Entity struct {
	Name string
	Kind string
}

// Artifact is the LLM-annotated, store-ready form of a raw search result,
// linked to the claim it was gathered in service of.
type Artifact struct {
	ClaimID        uuid.UUID
	Source         string
	ExternalID     string
	Author         string
	Text           string
	URL            string
	PublishedAt    time.Time
	Credibility    Credibility
	ClaimRelevance bool
	Entities       []Entity
}

// ArtifactRow is the persisted form of an Artifact, as returned by read
// queries, without its linked entities.
type ArtifactRow struct {
	ID             int64
	ClaimID        uuid.UUID
	Source         string
	ExternalID     string
	Author         string
	Text           string
	URL            string
	PublishedAt    time.Time
	Credibility    Credibility
	ClaimRelevance bool
}

// ArtifactWithEntities joins an ArtifactRow with its linked entities.
type ArtifactWithEntities struct {
	ArtifactRow
	Entities []Entity
}
