package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// Config holds the arguments needed to open the on-disk store.
type Config struct {
	// DatabaseFile is the full path to the SQLite database file. The
	// containing directory is created if it does not already exist.
	DatabaseFile string

	// SkipMigrations, if true, leaves the schema exactly as found; the
	// nowhere CLI sets this so it never migrates a database that a running
	// daemon owns.
	SkipMigrations bool
}

// Store is a Store backed by an on-disk SQLite database in WAL mode. Writes
// arrive already serialized by the owning actor's write permit; reads and
// writes share one connection pool, so that permit is the only writer
// serialization in this package.
type Store struct {
	db *sql.DB
}

var _ persistence.Store = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at cfg.DatabaseFile
// and runs pending schema migrations.
func Open(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.DatabaseFile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf(
		"file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000",
		cfg.DatabaseFile,
	)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One shared pool of up to 8 connections: WAL mode lets reads proceed
	// while a write transaction is open, and SQLite's own locking (with the
	// busy timeout above) makes a second concurrent writer wait.
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(10 * time.Minute)

	if err := configurePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring database: %w", err)
	}

	store := &Store{db: db}

	if !cfg.SkipMigrations {
		if err := runMigrations(store); err != nil {
			db.Close()
			return nil, err
		}
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func configurePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -65536",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %q: %w", p, err)
		}
	}
	return nil
}

// InsertClaim records a new claim.
func (s *Store) InsertClaim(ctx context.Context, claim persistence.Claim) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO claims (id, text, created_at) VALUES (?, ?, ?)
	`, claim.ID.String(), claim.Text, claim.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("inserting claim: %w", err)
	}
	return nil
}

// UpsertArtifact inserts artifact, or replaces the existing row sharing its
// (source, external_id) pair, then links its entities.
func (s *Store) UpsertArtifact(ctx context.Context, artifact persistence.Artifact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO artifacts (
			claim_id, source, external_id, author, text, url,
			published_at, credibility, claim_relevance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, external_id) DO UPDATE SET
			claim_id        = excluded.claim_id,
			author          = excluded.author,
			text            = excluded.text,
			url             = excluded.url,
			published_at    = excluded.published_at,
			credibility     = excluded.credibility,
			claim_relevance = excluded.claim_relevance
	`,
		artifact.ClaimID.String(), artifact.Source, artifact.ExternalID,
		artifact.Author, artifact.Text, artifact.URL,
		artifact.PublishedAt.Unix(), string(artifact.Credibility),
		artifact.ClaimRelevance,
	)
	if err != nil {
		return fmt.Errorf("upserting artifact: %w", err)
	}

	var artifactID int64
	row := tx.QueryRowContext(ctx, `
		SELECT id FROM artifacts WHERE source = ? AND external_id = ?
	`, artifact.Source, artifact.ExternalID)
	if err := row.Scan(&artifactID); err != nil {
		return fmt.Errorf("fetching upserted artifact id: %w", err)
	}

	for _, entity := range artifact.Entities {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entities (name, kind) VALUES (?, ?)
			ON CONFLICT(name, kind) DO NOTHING
		`, entity.Name, entity.Kind)
		if err != nil {
			return fmt.Errorf("inserting entity %q: %w", entity.Name, err)
		}

		var entityID int64
		row := tx.QueryRowContext(ctx, `
			SELECT id FROM entities WHERE name = ? AND kind = ?
		`, entity.Name, entity.Kind)
		if err := row.Scan(&entityID); err != nil {
			return fmt.Errorf("fetching entity %q id: %w", entity.Name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifact_entities (artifact_id, entity_id)
			VALUES (?, ?)
			ON CONFLICT(artifact_id, entity_id) DO NOTHING
		`, artifactID, entityID)
		if err != nil {
			return fmt.Errorf("linking entity %q: %w", entity.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// GetArtifact fetches one artifact with its linked entities.
func (s *Store) GetArtifact(ctx context.Context, id int64) (persistence.ArtifactWithEntities, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, claim_id, source, external_id, author, text, url,
		       published_at, credibility, claim_relevance
		FROM artifacts WHERE id = ?
	`, id)

	artifact, err := scanArtifactRow(row)
	if err != nil {
		return persistence.ArtifactWithEntities{}, fmt.Errorf(
			"fetching artifact %d: %w", id, err,
		)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.name, e.kind
		FROM entities e
		JOIN artifact_entities ae ON ae.entity_id = e.id
		WHERE ae.artifact_id = ?
	`, id)
	if err != nil {
		return persistence.ArtifactWithEntities{}, fmt.Errorf(
			"fetching entities for artifact %d: %w", id, err,
		)
	}
	defer rows.Close()

	var entities []persistence.Entity
	for rows.Next() {
		var e persistence.Entity
		if err := rows.Scan(&e.Name, &e.Kind); err != nil {
			return persistence.ArtifactWithEntities{}, fmt.Errorf(
				"scanning entity row: %w", err,
			)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return persistence.ArtifactWithEntities{}, fmt.Errorf(
			"iterating entity rows: %w", err,
		)
	}

	return persistence.ArtifactWithEntities{
		ArtifactRow: artifact,
		Entities:    entities,
	}, nil
}

// ListEntitiesByName looks up entities whose name matches name.
func (s *Store) ListEntitiesByName(ctx context.Context, name string, limit int) ([]persistence.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind FROM entities WHERE name = ? LIMIT ?
	`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var entities []persistence.Entity
	for rows.Next() {
		var e persistence.Entity
		if err := rows.Scan(&e.Name, &e.Kind); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListClaims fetches every claim under investigation, oldest first.
func (s *Store) ListClaims(ctx context.Context) ([]persistence.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, created_at FROM claims ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []persistence.Claim
	for rows.Next() {
		var (
			c         persistence.Claim
			id        string
			createdAt int64
		)
		if err := rows.Scan(&id, &c.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning claim row: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing claim id: %w", err)
		}
		c.ID = parsed
		c.CreatedAt = timeFromUnix(createdAt)
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// CountArtifacts reports how many artifacts have been gathered for claim.
func (s *Store) CountArtifacts(ctx context.Context, claim uuid.UUID) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM artifacts WHERE claim_id = ?
	`, claim.String())
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting artifacts for claim %s: %w", claim, err)
	}
	return count, nil
}

func scanArtifactRow(row *sql.Row) (persistence.ArtifactRow, error) {
	var (
		a           persistence.ArtifactRow
		claimID     string
		publishedAt int64
		credibility string
	)
	err := row.Scan(
		&a.ID, &claimID, &a.Source, &a.ExternalID, &a.Author, &a.Text,
		&a.URL, &publishedAt, &credibility, &a.ClaimRelevance,
	)
	if err != nil {
		return persistence.ArtifactRow{}, err
	}

	parsedClaim, err := uuid.Parse(claimID)
	if err != nil {
		return persistence.ArtifactRow{}, fmt.Errorf("parsing claim id: %w", err)
	}
	a.ClaimID = parsedClaim
	a.PublishedAt = timeFromUnix(publishedAt)
	a.Credibility = persistence.Credibility(credibility)

	return a, nil
}

func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
