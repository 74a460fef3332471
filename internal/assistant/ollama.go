// Package assistant turns free text into gateway actions. It delegates to
// an external Ollama instance first and falls back to a deterministic local
// matcher whenever the external call fails, times out, or returns output
// that does not parse into a valid action.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"smarthome_gateway/internal/models"
)

const availabilityTimeout = 3 * time.Second

// Config is the external interpreter endpoint, environment-supplied.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a minimal Ollama HTTP client.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewClient builds a client with a bounded request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs one non-streaming completion and returns the raw text.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: generateOptions{Temperature: 0.3, NumPredict: 150},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Response, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Status checks whether the interpreter endpoint is reachable and lists
// its models.
func (c *Client) Status(ctx context.Context) models.AssistantStatus {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return models.AssistantStatus{Available: false, Error: err.Error()}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return models.AssistantStatus{Available: false, Error: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.AssistantStatus{Available: false, Error: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return models.AssistantStatus{Available: false, Error: err.Error()}
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return models.AssistantStatus{Available: true, Models: names}
}
