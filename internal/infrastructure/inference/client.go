package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"SentimentScanner/internal/ports"
)

// Client talks to an external inference service exposing a sentiment
// model behind a single scoring endpoint. Any model returning polarity
// in [-1,1] and subjectivity in [0,1] can sit behind it.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.Estimator = (*Client)(nil)

// NewClient creates a reusable HTTP client for the scoring endpoint.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Estimate posts the text for scoring and validates the returned ranges.
func (c *Client) Estimate(ctx context.Context, text string) (float64, float64, error) {
	if c.http == nil || c.endpoint == "" {
		return 0, 0, fmt.Errorf("inference client misconfigured")
	}

	var resp struct {
		Polarity     float64 `json:"polarity"`
		Subjectivity float64 `json:"subjectivity"`
	}

	payload := map[string]any{"text": text}
	if err := c.post(ctx, "/score", payload, &resp); err != nil {
		return 0, 0, err
	}

	if resp.Polarity < -1 || resp.Polarity > 1 {
		return 0, 0, fmt.Errorf("polarity %v out of range [-1,1]", resp.Polarity)
	}
	if resp.Subjectivity < 0 || resp.Subjectivity > 1 {
		return 0, 0, fmt.Errorf("subjectivity %v out of range [0,1]", resp.Subjectivity)
	}

	return resp.Polarity, resp.Subjectivity, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
