package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/roasbeef/nowhere/internal/actorcore"
)

// Ref is a convenience wrapper over an Addr[Msg] giving callers plain
// function-call ergonomics instead of building messages and reply channels
// by hand.
type Ref struct {
	addr actorcore.Addr[Msg]
}

// NewRef wraps addr.
func NewRef(addr actorcore.Addr[Msg]) Ref {
	return Ref{addr: addr}
}

// InsertClaim fires and forgets; write errors are logged by the actor, not
// returned here.
func (r Ref) InsertClaim(ctx context.Context, claim Claim) error {
	return r.addr.Send(ctx, InsertClaim{Claim: claim})
}

// UpsertArtifact fires and forgets; write errors are logged by the actor,
// not returned here.
func (r Ref) UpsertArtifact(ctx context.Context, artifact Artifact) error {
	return r.addr.Send(ctx, UpsertArtifact{Artifact: artifact})
}

// GetArtifact fetches one artifact with its linked entities.
func (r Ref) GetArtifact(ctx context.Context, id int64) (ArtifactWithEntities, error) {
	reply := make(chan fn.Result[ArtifactWithEntities], 1)
	if err := r.addr.Send(ctx, GetArtifact{ID: id, Reply: reply}); err != nil {
		return ArtifactWithEntities{}, err
	}
	select {
	case res := <-reply:
		return res.Unpack()
	case <-ctx.Done():
		return ArtifactWithEntities{}, ctx.Err()
	}
}

// SearchArtifacts full-text searches artifacts gathered for claim.
func (r Ref) SearchArtifacts(ctx context.Context, claim uuid.UUID, query string, limit int) ([]ArtifactRow, error) {
	reply := make(chan fn.Result[[]ArtifactRow], 1)
	err := r.addr.Send(ctx, SearchArtifacts{
		Claim: claim, Query: query, Limit: limit, Reply: reply,
	})
	if err != nil {
		return nil, err
	}
	select {
	case res := <-reply:
		return res.Unpack()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ListEntitiesByName looks up entities whose name matches name.
func (r Ref) ListEntitiesByName(ctx context.Context, name string, limit int) ([]Entity, error) {
	reply := make(chan fn.Result[[]Entity], 1)
	err := r.addr.Send(ctx, ListEntitiesByName{Name: name, Limit: limit, Reply: reply})
	if err != nil {
		return nil, err
	}
	select {
	case res := <-reply:
		return res.Unpack()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ListClaims fetches every claim under investigation.
func (r Ref) ListClaims(ctx context.Context) ([]Claim, error) {
	reply := make(chan fn.Result[[]Claim], 1)
	if err := r.addr.Send(ctx, ListClaims{Reply: reply}); err != nil {
		return nil, err
	}
	select {
	case res := <-reply:
		return res.Unpack()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CountArtifacts reports how many artifacts have been gathered for claim.
func (r Ref) CountArtifacts(ctx context.Context, claim uuid.UUID) (int, error) {
	reply := make(chan fn.Result[int], 1)
	if err := r.addr.Send(ctx, CountArtifacts{Claim: claim, Reply: reply}); err != nil {
		return 0, err
	}
	select {
	case res := <-reply:
		return res.Unpack()
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// WatchArtifacts registers a one-shot watcher for the next artifact upserted
// relevantly against claim. It returns a channel that fires at most once.
// A watcher whose ctx is done is never fired, and the actor drops it on its
// next sweep of claim's watchers (the next WatchArtifacts or relevant
// upsert for claim).
func (r Ref) WatchArtifacts(ctx context.Context, claim uuid.UUID) (<-chan struct{}, error) {
	reply := make(chan struct{}, 1)
	err := r.addr.Send(ctx, WatchArtifacts{
		Claim: claim, Reply: reply, Done: ctx.Done(),
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}
