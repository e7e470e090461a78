package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

// Client talks to an external sentiment-inference service. It is safe for
// concurrent Classify calls.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.SentimentModel = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Init verifies the inference service is reachable. Called once per process.
func (c *Client) Init(ctx context.Context) error {
	if c.endpoint == "" {
		return fmt.Errorf("inference endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %s", resp.Status)
	}
	return nil
}

// Classify sends the text for labeling and maps the model's label space
// onto the three polarity labels.
func (c *Client) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	payload := map[string]any{"text": text}

	var resp struct {
		Label string `json:"label"`
	}
	if err := c.post(ctx, "/classify", payload, &resp); err != nil {
		return domain.SentimentNeutral, err
	}

	return mapLabel(resp.Label), nil
}

// mapLabel tolerates the common model label spaces: plain words, short
// forms, and indexed labels (label_0=negative, label_2=positive).
func mapLabel(label string) domain.Sentiment {
	label = strings.ToLower(label)
	switch {
	case strings.Contains(label, "positive"), strings.Contains(label, "pos"), label == "label_2":
		return domain.SentimentPositive
	case strings.Contains(label, "negative"), strings.Contains(label, "neg"), label == "label_0":
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
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

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
