package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roasbeef/nowhere/internal/persistence"
)

func newTestServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req responsesAPIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{
			"output": []any{
				map[string]any{
					"content": []any{
						map[string]any{"type": "output_text", "text": text},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatReturnsFirstTextBlock(t *testing.T) {
	srv := newTestServer(t, "hello there")
	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL, Model: "test-model"})

	got, err := client.Chat(context.Background(), "hi")
	require.NoError(t, err)
	require.Equal(t, "hello there", got)
}

func TestAnalyzeRelevanceParsesYesAndCredibility(t *testing.T) {
	srv := newTestServer(t, "yes")
	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL, Model: "test-model"})

	claimID := uuid.New()
	artifact, err := client.AnalyzeRelevance(context.Background(), "claim text", RawArtifact{
		ClaimID: claimID.String(),
		Source:  "twitter",
		Text:    "evidence text",
	})
	require.NoError(t, err)
	require.True(t, artifact.ClaimRelevance)
	require.Equal(t, claimID, artifact.ClaimID)

	// The stub answers "yes" to the credibility prompt too, which is not a
	// recognised rating.
	require.Equal(t, persistence.CredibilityUnknown, artifact.Credibility)
}

func TestParseCredibility(t *testing.T) {
	require.Equal(t, persistence.CredibilityStrong, parseCredibility("Strong"))
	require.Equal(t, persistence.CredibilityWeak, parseCredibility(" weak \n"))
	require.Equal(t, persistence.CredibilityUnknown, parseCredibility("garbage"))
}
