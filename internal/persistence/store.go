package persistence

import (
	"context"

	"github.com/google/uuid"
)

// Store is the storage engine the actor in this package drives. InsertClaim
// and UpsertArtifact are only ever called while the actor's write permit is
// held; the read methods may be called concurrently with a write and with
// each other.
type Store interface {
	InsertClaim(ctx context.Context, claim Claim) error
	UpsertArtifact(ctx context.Context, artifact Artifact) error
	GetArtifact(ctx context.Context, id int64) (ArtifactWithEntities, error)
	SearchArtifacts(ctx context.Context, claim uuid.UUID, query string, limit int) ([]ArtifactRow, error)
	ListEntitiesByName(ctx context.Context, name string, limit int) ([]Entity, error)
	ListClaims(ctx context.Context) ([]Claim, error)
	CountArtifacts(ctx context.Context, claim uuid.UUID) (int, error)
}
