package persistence

import (
	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Msg is the sealed message family the persistence actor's Handle accepts.
type Msg interface {
	isStoreMsg()
}

// InsertClaim records a new claim. Fire-and-forget: write errors are logged
// and dropped, since the caller carries no reply channel.
type InsertClaim struct {
	Claim Claim
}

func (InsertClaim) isStoreMsg() {}

// UpsertArtifact records an artifact (insert, or replace on a matching
// source/external-id pair). If the write succeeds and Artifact.ClaimRelevance
// is true, the actor self-enqueues ArtifactUpserted for Artifact.ClaimID.
// Fire-and-forget: write errors are logged and dropped.
type UpsertArtifact struct {
	Artifact Artifact
}

func (UpsertArtifact) isStoreMsg() {}

// GetArtifact fetches one artifact with its linked entities by row id. Reads
// run concurrently with each other and with in-flight writes.
type GetArtifact struct {
	ID    int64
	Reply chan<- fn.Result[ArtifactWithEntities]
}

func (GetArtifact) isStoreMsg() {}

// SearchArtifacts full-text searches artifacts gathered for Claim.
type SearchArtifacts struct {
	Claim uuid.UUID
	Query string
	Limit int
	Reply chan<- fn.Result[[]ArtifactRow]
}

func (SearchArtifacts) isStoreMsg() {}

// ListEntitiesByName looks up entities whose name matches Name.
type ListEntitiesByName struct {
	Name  string
	Limit int
	Reply chan<- fn.Result[[]Entity]
}

func (ListEntitiesByName) isStoreMsg() {}

// WatchArtifacts registers Reply as a one-shot watcher for the next relevant
// artifact upserted against Claim. Reply must be buffered with capacity at
// least 1, since the firing happens from inside the actor's own message
// loop and must never block on a slow subscriber. Done should be the
// watcher's context.Context.Done(); once it fires the actor drops the entry
// on its next sweep instead of waiting for a notification that may never
// come.
type WatchArtifacts struct {
	Claim uuid.UUID
	Reply chan<- struct{}
	Done  <-chan struct{}
}

func (WatchArtifacts) isStoreMsg() {}

// ListClaims fetches every claim under investigation, oldest first.
type ListClaims struct {
	Reply chan<- fn.Result[[]Claim]
}

func (ListClaims) isStoreMsg() {}

// CountArtifacts reports how many artifacts have been gathered for Claim.
type CountArtifacts struct {
	Claim uuid.UUID
	Reply chan<- fn.Result[int]
}

func (CountArtifacts) isStoreMsg() {}

// ArtifactUpserted is self-enqueued by UpsertArtifact's detached write task
// after a successful, claim-relevant write. It drains and fires every
// watcher registered for Claim.
type ArtifactUpserted struct {
	Claim uuid.UUID
}

func (ArtifactUpserted) isStoreMsg() {}
