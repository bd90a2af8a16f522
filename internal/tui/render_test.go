package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roasbeef/nowhere/internal/persistence"
)

func TestRenderClaimsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewScreen(&buf).RenderClaims(nil)
	require.Contains(t, buf.String(), "No claims under investigation.")
}

func TestRenderClaimsListsCounts(t *testing.T) {
	var buf bytes.Buffer
	NewScreen(&buf).RenderClaims([]ClaimView{
		{ID: "11111111-aaaa", Text: "bridge collapsed downtown", ArtifactCount: 3},
	})
	out := buf.String()
	require.Contains(t, out, "artifacts=3")
	require.Contains(t, out, "bridge collapsed downtown")
}

func TestRenderArtifactsMarksRelevance(t *testing.T) {
	var buf bytes.Buffer
	NewScreen(&buf).RenderArtifacts("bridge collapse", []persistence.ArtifactRow{
		{
			Author:         "witness1",
			Source:         "twitter",
			Text:           "saw it happen live",
			URL:            "https://x.com/i/web/status/1",
			Credibility:    persistence.CredibilityStrong,
			ClaimRelevance: true,
			PublishedAt:    time.Now(),
		},
	})
	out := buf.String()
	require.Contains(t, out, "STRONG")
	require.Contains(t, out, "witness1")
	require.Contains(t, out, "*")
}

func TestRenderWatcherStatus(t *testing.T) {
	var buf bytes.Buffer
	screen := NewScreen(&buf)
	screen.RenderWatcherStatus("bridge collapse", true)
	require.Contains(t, buf.String(), "Watching claim")

	buf.Reset()
	screen.RenderWatcherStatus("bridge collapse", false)
	require.Contains(t, buf.String(), "No active watch")
}
