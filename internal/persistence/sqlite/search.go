package sqlite

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// SearchArtifacts full-text searches artifacts gathered for claim. The
// caller's query is sanitized before being handed to FTS5; a query that
// sanitizes to empty falls back to an unfiltered listing for claim, scoped
// by limit.
func (s *Store) SearchArtifacts(ctx context.Context, claim uuid.UUID, query string, limit int) ([]persistence.ArtifactRow, error) {
	sanitized := sanitizeFTSQuery(query)
	if sanitized == "" {
		return s.listArtifacts(ctx, claim, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.claim_id, a.source, a.external_id, a.author,
		       a.text, a.url, a.published_at, a.credibility,
		       a.claim_relevance
		FROM artifacts_fts fts
		JOIN artifacts a ON a.id = fts.rowid
		WHERE artifacts_fts MATCH ? AND a.claim_id = ?
		ORDER BY bm25(artifacts_fts)
		LIMIT ?
	`, sanitized, claim.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("searching artifacts: %w", err)
	}
	defer rows.Close()

	return scanArtifactRows(rows)
}

func (s *Store) listArtifacts(ctx context.Context, claim uuid.UUID, limit int) ([]persistence.ArtifactRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, source, external_id, author, text, url,
		       published_at, credibility, claim_relevance
		FROM artifacts
		WHERE claim_id = ?
		ORDER BY published_at DESC
		LIMIT ?
	`, claim.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	return scanArtifactRows(rows)
}

// sanitizeFTSQuery strips FTS5 syntax characters so caller-supplied search
// text can never be interpreted as query operators: it lowercases, keeps
// only letters and digits within each whitespace-split token, drops empty
// tokens, and rejoins with single spaces (an implicit AND in FTS5's default
// query syntax).
func sanitizeFTSQuery(query string) string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		var b strings.Builder
		for _, r := range field {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}

	return strings.Join(tokens, " ")
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanArtifactRows(rows rowsScanner) ([]persistence.ArtifactRow, error) {
	var results []persistence.ArtifactRow
	for rows.Next() {
		var (
			a           persistence.ArtifactRow
			claimID     string
			publishedAt int64
			credibility string
		)
		err := rows.Scan(
			&a.ID, &claimID, &a.Source, &a.ExternalID, &a.Author,
			&a.Text, &a.URL, &publishedAt, &credibility,
			&a.ClaimRelevance,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact row: %w", err)
		}

		parsed, err := uuid.Parse(claimID)
		if err != nil {
			return nil, fmt.Errorf("parsing claim id: %w", err)
		}
		a.ClaimID = parsed
		a.PublishedAt = timeFromUnix(publishedAt)
		a.Credibility = persistence.Credibility(credibility)

		results = append(results, a)
	}
	return results, rows.Err()
}
