// Package inference provides thin clients for hosted model inference
// endpoints. Clients issue one network call and return the raw
// provider-specific response; interpretation happens in the check package.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the HuggingFace Inference API root.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// DefaultTimeout bounds a single inference call.
const DefaultTimeout = 30 * time.Second

// Client issues a request to a hosted inference endpoint given a model
// identifier and a payload, and returns the raw provider response.
type Client interface {
	Infer(ctx context.Context, model string, payload any) ([]byte, error)
}

// UpstreamError indicates an inference call failed: a network error, a
// timeout, or a non-2xx status from the provider.
type UpstreamError struct {
	Model      string
	StatusCode int
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference call to %s failed with status %d", e.Model, e.StatusCode)
	}
	return fmt.Sprintf("inference call to %s failed: %v", e.Model, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// ClassificationRequest is the payload for text-classification models.
type ClassificationRequest struct {
	Inputs string `json:"inputs"`
}

// GenerationParameters tunes text2text-generation models.
type GenerationParameters struct {
	MaxNewTokens int `json:"max_new_tokens,omitempty"`
}

// GenerationRequest is the payload for text2text-generation models.
type GenerationRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters *GenerationParameters `json:"parameters,omitempty"`
}

// Options configures the HuggingFace client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// HFClient calls the HuggingFace Inference API.
type HFClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHFClient creates a HuggingFace Inference API client. A nil opts uses
// the production endpoint and the default timeout.
func NewHFClient(apiKey string, opts *Options) *HFClient {
	baseURL := DefaultBaseURL
	timeout := DefaultTimeout
	if opts != nil {
		if opts.BaseURL != "" {
			baseURL = opts.BaseURL
		}
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
	}
	return &HFClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Infer posts the payload to the model's inference endpoint and returns
// the raw response body.
func (c *HFClient) Infer(ctx context.Context, model string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference payload: %w", err)
	}

	url := c.baseURL + "/models/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Model: model, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Model: model, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Model: model, StatusCode: resp.StatusCode}
	}
	return raw, nil
}
