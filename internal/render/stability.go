package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	stabilityURL          = "https://api.stability.ai/v2beta/stable-image/generate/core"
	defaultStabilityModel = "stable-image-core"
)

// shared HTTP client for Stability API calls
var stabilityHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Stability API calls (2 requests/second with burst capacity of 2)
var stabilityRateLimiter = rate.NewLimiter(2, 2)

type stabilityRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	OutputFormat   string `json:"output_format"`
}

type stabilityResponse struct {
	Image        string `json:"image"` // base64
	FinishReason string `json:"finish_reason"`
}

type StabilityRenderer struct {
	config     Config
	httpClient *http.Client
}

func NewStabilityRenderer(config Config) *StabilityRenderer {
	if config.Model == "" {
		config.Model = defaultStabilityModel
	}

	return &StabilityRenderer{
		config:     config,
		httpClient: stabilityHTTPClient,
	}
}

func (r *StabilityRenderer) Model() string {
	return r.config.Model
}

func (r *StabilityRenderer) Render(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if err := stabilityRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	body := stabilityRequest{
		Prompt:         req.MainPrompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    aspectRatio(req.Width, req.Height),
		OutputFormat:   "png",
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", stabilityURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.config.APIKey))

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderStability, Message: "request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   ProviderStability,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var stResp stabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&stResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if stResp.Image == "" {
		return nil, &ProviderError{Provider: ProviderStability, Message: "no image returned"}
	}

	return &ImageResult{
		Base64:   stResp.Image,
		Provider: ProviderStability,
		Model:    r.config.Model,
	}, nil
}

func aspectRatio(width, height int) string {
	switch {
	case width > height:
		return "16:9"
	case height > width:
		return "9:16"
	default:
		return "1:1"
	}
}
