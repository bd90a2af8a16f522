package daemon

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// inMemoryStore is a minimal persistence.Store used to exercise the
// supervised loops without a real database.
type inMemoryStore struct {
	mu        sync.Mutex
	claims    []persistence.Claim
	artifacts []persistence.Artifact
}

func (s *inMemoryStore) InsertClaim(_ context.Context, claim persistence.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims = append(s.claims, claim)
	return nil
}

func (s *inMemoryStore) UpsertArtifact(_ context.Context, artifact persistence.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, artifact)
	return nil
}

func (s *inMemoryStore) GetArtifact(_ context.Context, id int64) (persistence.ArtifactWithEntities, error) {
	return persistence.ArtifactWithEntities{}, nil
}

func (s *inMemoryStore) SearchArtifacts(_ context.Context, claim uuid.UUID, query string, limit int) ([]persistence.ArtifactRow, error) {
	return nil, nil
}

func (s *inMemoryStore) ListEntitiesByName(_ context.Context, name string, limit int) ([]persistence.Entity, error) {
	return nil, nil
}

func (s *inMemoryStore) ListClaims(_ context.Context) ([]persistence.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Claim, len(s.claims))
	copy(out, s.claims)
	return out, nil
}

func (s *inMemoryStore) CountArtifacts(_ context.Context, claim uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.artifacts {
		if a.ClaimID == claim {
			count++
		}
	}
	return count, nil
}

func (s *inMemoryStore) snapshot() []persistence.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]persistence.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}
