package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.twitter.com/2"

// HTTPConfig configures an HTTPClient against the Twitter/X recent-search
// endpoint.
type HTTPConfig struct {
	BaseURL     string
	BearerToken string
	MaxResults  int
	Timeout     time.Duration
}

// HTTPClient is a Client backed by the Twitter/X v2 recent-search endpoint.
type HTTPClient struct {
	cfg        HTTPConfig
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns an HTTPClient for cfg, applying defaults for
// BaseURL, MaxResults, and Timeout when unset.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 100
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type searchResponse struct {
	Data []struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		AuthorID string `json:"author_id"`
	} `json:"data"`
}

// Search issues one recent-search request and maps the response into
// RawArtifacts. It does not paginate past the endpoint's first page.
func (c *HTTPClient) Search(ctx context.Context, cmd SearchCmd) ([]RawArtifact, error) {
	if cmd.DateTo.Before(cmd.DateFrom) {
		return nil, fmt.Errorf(
			"invalid search window: date_to (%s) precedes date_from (%s)",
			cmd.DateTo, cmd.DateFrom,
		)
	}

	params := url.Values{}
	params.Set("query", cmd.Query)
	params.Set("max_results", fmt.Sprintf("%d", c.cfg.MaxResults))
	params.Set("start_time", cmd.DateFrom.UTC().Format(time.RFC3339))
	params.Set("end_time", cmd.DateTo.UTC().Format(time.RFC3339))

	reqURL := c.cfg.BaseURL + "/tweets/search/recent?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling twitter search endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter search endpoint returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	artifacts := make([]RawArtifact, 0, len(parsed.Data))
	for _, tw := range parsed.Data {
		artifacts = append(artifacts, RawArtifact{
			ExternalID: tw.ID,
			Author:     tw.AuthorID,
			Text:       tw.Text,
			URL:        fmt.Sprintf("https://x.com/i/web/status/%s", tw.ID),
		})
	}
	return artifacts, nil
}
