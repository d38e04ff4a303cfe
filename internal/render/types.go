// Package render wraps external image-generation providers behind a single
// interface. Rendering is the only high-latency external call in the
// generation pipeline.
package render

import (
	"context"
	"fmt"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderStability Provider = "stability"
)

// ImageRequest carries the assembled prompts to the provider
type ImageRequest struct {
	MainPrompt     string
	NegativePrompt string
	Width          int
	Height         int
}

// ImageResult is one rendered image
type ImageResult struct {
	URL      string // hosted result, when the provider returns one
	Base64   string // inline payload, when the provider returns one
	Provider Provider
	Model    string
}

// Renderer is the contract the pipeline depends on
type Renderer interface {
	Render(ctx context.Context, req ImageRequest) (*ImageResult, error)
	Model() string
}

// ProviderError wraps a failed provider call. Transient failures (rate
// limits, 5xx, timeouts) are eligible for a bounded retry by the caller;
// everything else is terminal.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s render failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s render failed: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Temporary reports whether a retry could plausibly succeed
func (e *ProviderError) Temporary() bool {
	if e.StatusCode == 429 {
		return true
	}

	if e.StatusCode >= 500 && e.StatusCode < 600 {
		return true
	}

	// transport-level failure with no HTTP status (timeout, reset)
	return e.StatusCode == 0 && e.Err != nil
}

type Config struct {
	Provider Provider
	APIKey   string
	Model    string
}
