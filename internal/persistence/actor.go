package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/roasbeef/nowhere/internal/actorcore"
)

// watcher is one registered one-shot subscription for the next relevant
// artifact upserted against a claim.
type watcher struct {
	reply chan<- struct{}
	done  <-chan struct{}
}

func (w watcher) alive() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// StoreActor is the persistence actor's behavior. Store-layer reads may run
// concurrently with each other and with an in-flight write; writes are
// serialized by writePermit, a semaphore of one.
type StoreActor struct {
	store       Store
	writePermit chan struct{}
	watchers    map[uuid.UUID][]watcher
}

// NewStoreActor wraps store behind the persistence actor's message contract.
func NewStoreActor(store Store) *StoreActor {
	permit := make(chan struct{}, 1)
	permit <- struct{}{}

	return &StoreActor{
		store:       store,
		writePermit: permit,
		watchers:    make(map[uuid.UUID][]watcher),
	}
}

var _ actorcore.Handler[Msg] = (*StoreActor)(nil)

// Handle dispatches the persistence message family. Writes and reads are
// both executed from detached goroutines so a slow store call never backs
// up the actor's own mailbox; ArtifactUpserted and WatchArtifacts are
// handled inline since they only touch in-memory watcher state.
func (a *StoreActor) Handle(_ context.Context, msg Msg, actx *actorcore.Context[Msg]) error {
	switch m := msg.(type) {
	case InsertClaim:
		a.handleInsertClaim(m)
	case UpsertArtifact:
		a.handleUpsertArtifact(m, actx)
	case GetArtifact:
		a.handleGetArtifact(m)
	case SearchArtifacts:
		a.handleSearchArtifacts(m)
	case ListEntitiesByName:
		a.handleListEntitiesByName(m)
	case ListClaims:
		a.handleListClaims(m)
	case CountArtifacts:
		a.handleCountArtifacts(m)
	case WatchArtifacts:
		a.handleWatch(m)
	case ArtifactUpserted:
		a.handleUpserted(m)
	}
	return nil
}

func (a *StoreActor) handleInsertClaim(m InsertClaim) {
	go func() {
		<-a.writePermit
		defer func() { a.writePermit <- struct{}{} }()

		if err := a.store.InsertClaim(context.Background(), m.Claim); err != nil {
			log.Errorf("insert claim %v failed: %v", m.Claim.ID, err)
		}
	}()
}

func (a *StoreActor) handleUpsertArtifact(m UpsertArtifact, actx *actorcore.Context[Msg]) {
	self := actx.Self()

	go func() {
		<-a.writePermit
		defer func() { a.writePermit <- struct{}{} }()

		err := a.store.UpsertArtifact(context.Background(), m.Artifact)
		if err != nil {
			log.Errorf("upsert artifact %s/%s failed: %v",
				m.Artifact.Source, m.Artifact.ExternalID, err)
			return
		}

		if m.Artifact.ClaimRelevance {
			err := self.Send(
				context.Background(),
				ArtifactUpserted{Claim: m.Artifact.ClaimID},
			)
			if err != nil {
				log.Errorf("self-enqueue ArtifactUpserted failed: %v", err)
			}
		}
	}()
}

func (a *StoreActor) handleGetArtifact(m GetArtifact) {
	go func() {
		v, err := a.store.GetArtifact(context.Background(), m.ID)
		replyResult(m.Reply, v, err)
	}()
}

func (a *StoreActor) handleSearchArtifacts(m SearchArtifacts) {
	go func() {
		v, err := a.store.SearchArtifacts(
			context.Background(), m.Claim, m.Query, m.Limit,
		)
		replyResult(m.Reply, v, err)
	}()
}

func (a *StoreActor) handleListEntitiesByName(m ListEntitiesByName) {
	go func() {
		v, err := a.store.ListEntitiesByName(
			context.Background(), m.Name, m.Limit,
		)
		replyResult(m.Reply, v, err)
	}()
}

func (a *StoreActor) handleListClaims(m ListClaims) {
	go func() {
		v, err := a.store.ListClaims(context.Background())
		replyResult(m.Reply, v, err)
	}()
}

func (a *StoreActor) handleCountArtifacts(m CountArtifacts) {
	go func() {
		v, err := a.store.CountArtifacts(context.Background(), m.Claim)
		replyResult(m.Reply, v, err)
	}()
}

// replyResult packages a store call's outcome as an fn.Result and delivers
// it with a non-blocking send: reply channels are always created with
// capacity 1 by the caller, so a blocked send here would mean the caller has
// already given up.
func replyResult[T any](reply chan<- fn.Result[T], value T, err error) {
	if reply == nil {
		return
	}
	var result fn.Result[T]
	if err != nil {
		result = fn.Err[T](err)
	} else {
		result = fn.Ok(value)
	}
	select {
	case reply <- result:
	default:
	}
}

func (a *StoreActor) handleWatch(m WatchArtifacts) {
	live := a.watchers[m.Claim][:0]
	for _, w := range a.watchers[m.Claim] {
		if w.alive() {
			live = append(live, w)
		}
	}
	a.watchers[m.Claim] = append(live, watcher{reply: m.Reply, done: m.Done})
}

func (a *StoreActor) handleUpserted(m ArtifactUpserted) {
	watchers, ok := a.watchers[m.Claim]
	if !ok {
		return
	}
	delete(a.watchers, m.Claim)

	for _, w := range watchers {
		if !w.alive() {
			continue
		}
		select {
		case w.reply <- struct{}{}:
		default:
		}
	}
}
