package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roasbeef/nowhere/internal/persistence"
)

// HTTPConfig configures an OpenAI-Responses-API-compatible HTTP client.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// HTTPClient is a Client backed by an OpenAI-Responses-API-shaped HTTP
// endpoint.
type HTTPClient struct {
	cfg        HTTPConfig
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns an HTTPClient for cfg, applying a default timeout
// when none is set.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type responsesAPIRequest struct {
	Model        string `json:"model"`
	Input        string `json:"input"`
	Instructions string `json:"instructions"`
}

type responsesAPIResponse struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Chat sends prompt under osintSystemPrompt and returns the first text
// content block of the model's response.
func (c *HTTPClient) Chat(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(responsesAPIRequest{
		Model:        c.cfg.Model,
		Input:        prompt,
		Instructions: osintSystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling llm request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/responses"
	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(reqBody),
	)
	if err != nil {
		return "", fmt.Errorf("building llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling llm endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm endpoint returned status %d", resp.StatusCode)
	}

	var parsed responsesAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding llm response: %w", err)
	}

	for _, out := range parsed.Output {
		for _, content := range out.Content {
			if content.Text != "" {
				return content.Text, nil
			}
		}
	}
	return "", nil
}

// AnalyzeRelevance asks the model a tightly scoped yes/no relevance
// question, then a coarse credibility question, and assembles a
// persistence.Artifact ready for UpsertArtifact. claim is the claim's text,
// used only for prompting; raw.ClaimID supplies the claim's id for the
// returned Artifact.
func (c *HTTPClient) AnalyzeRelevance(ctx context.Context, claim string, raw RawArtifact) (persistence.Artifact, error) {
	relevancePrompt := fmt.Sprintf(
		"CLAIM: %q\n\nEVIDENCE: %q\n\nIs this evidence directly relevant to investigating the claim? Answer only yes or no.",
		claim, raw.Text,
	)
	relevanceText, err := c.Chat(ctx, relevancePrompt)
	if err != nil {
		return persistence.Artifact{}, fmt.Errorf("analyzing relevance: %w", err)
	}
	relevant := strings.Contains(strings.ToLower(relevanceText), "yes")

	credibilityPrompt := fmt.Sprintf(
		"SOURCE: %s\n\nCONTENT: %q\n\nRate this source's credibility as one word: strong, weak, or unknown.",
		raw.Source, raw.Text,
	)
	credibilityText, err := c.Chat(ctx, credibilityPrompt)
	if err != nil {
		return persistence.Artifact{}, fmt.Errorf("analyzing credibility: %w", err)
	}

	claimID, err := uuid.Parse(raw.ClaimID)
	if err != nil {
		return persistence.Artifact{}, fmt.Errorf("parsing claim id: %w", err)
	}

	return persistence.Artifact{
		ClaimID:        claimID,
		Source:         raw.Source,
		ExternalID:     raw.ExternalID,
		Author:         raw.Author,
		Text:           raw.Text,
		URL:            raw.URL,
		PublishedAt:    time.Now(),
		Credibility:    parseCredibility(credibilityText),
		ClaimRelevance: relevant,
	}, nil
}

func parseCredibility(text string) persistence.Credibility {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "strong":
		return persistence.CredibilityStrong
	case "weak":
		return persistence.CredibilityWeak
	default:
		return persistence.CredibilityUnknown
	}
}
