package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchMapsTweetsToRawArtifacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"1","text":"hello","author_id":"42"}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(HTTPConfig{BaseURL: srv.URL, BearerToken: "test-token"})
	now := time.Now()
	results, err := client.Search(context.Background(), SearchCmd{
		Query: "test", DateFrom: now.Add(-time.Hour), DateTo: now,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "1", results[0].ExternalID)
	require.Equal(t, "hello", results[0].Text)
}

func TestSearchRejectsInvertedWindow(t *testing.T) {
	client := NewHTTPClient(HTTPConfig{BaseURL: "http://unused.invalid"})
	now := time.Now()
	_, err := client.Search(context.Background(), SearchCmd{
		DateFrom: now, DateTo: now.Add(-time.Hour),
	})
	require.Error(t, err)
}
