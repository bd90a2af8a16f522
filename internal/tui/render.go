// Package tui renders investigation state to a scrolling terminal view.
// It is a thin external collaborator: it only renders data its caller has
// already fetched (the nowhere CLI reads it from the SQLite store
// directly) and never imports the actor runtime itself.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// ClaimView is one claim plus its artifact count, ready for display.
type ClaimView struct {
	ID            string
	Text          string
	ArtifactCount int
}

// Screen writes a scrolling text view to an underlying writer, a plain
// fmt.Fprintf-based renderer with no external TUI library involved.
type Screen struct {
	w io.Writer
}

// NewScreen returns a Screen writing to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// RenderClaims prints the claim list with per-claim artifact counts.
func (s *Screen) RenderClaims(claims []ClaimView) {
	if len(claims) == 0 {
		fmt.Fprintln(s.w, "No claims under investigation.")
		return
	}

	fmt.Fprintf(s.w, "Claims (%d):\n\n", len(claims))
	for _, c := range claims {
		fmt.Fprintf(s.w, "  %s  %-60s  artifacts=%d\n",
			shortID(c.ID), truncate(c.Text, 60), c.ArtifactCount)
	}
}

// RenderArtifacts prints the artifacts gathered for a single claim, in the
// order given, with credibility and relevance markers.
func (s *Screen) RenderArtifacts(claim string, artifacts []persistence.ArtifactRow) {
	if len(artifacts) == 0 {
		fmt.Fprintf(s.w, "No artifacts for claim %q yet.\n", claim)
		return
	}

	fmt.Fprintf(s.w, "Artifacts for claim %q (%d):\n\n", claim, len(artifacts))
	for _, a := range artifacts {
		relevance := "  "
		if a.ClaimRelevance {
			relevance = "* "
		}
		fmt.Fprintf(s.w, "%s[%s] %s (%s) — %s\n",
			relevance, strings.ToUpper(string(a.Credibility)), a.Author,
			a.Source, truncate(a.Text, 80))
		fmt.Fprintf(s.w, "     %s\n", a.URL)
	}
}

// RenderWatcherStatus prints whether a live watch is currently
// registered against a claim.
func (s *Screen) RenderWatcherStatus(claim string, active bool) {
	if active {
		fmt.Fprintf(s.w, "Watching claim %q for new artifacts.\n", claim)
		return
	}
	fmt.Fprintf(s.w, "No active watch on claim %q.\n", claim)
}

func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n-1] + "…"
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
