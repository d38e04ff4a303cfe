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
	openaiImagesURL    = "https://api.openai.com/v1/images/generations"
	defaultOpenAIModel = "dall-e-3"
)

// shared HTTP client for OpenAI image calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 120 * time.Second, // image generation is a multi-second call
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenAI image calls (5 requests/second with burst capacity of 2)
var openaiRateLimiter = rate.NewLimiter(5, 2)

type openaiImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type openaiImageResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

type OpenAIRenderer struct {
	config     Config
	httpClient *http.Client
}

func NewOpenAIRenderer(config Config) *OpenAIRenderer {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	return &OpenAIRenderer{
		config:     config,
		httpClient: openaiHTTPClient,
	}
}

func (r *OpenAIRenderer) Model() string {
	return r.config.Model
}

func (r *OpenAIRenderer) Render(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	// the images API has no negative-prompt field; fold it into the prompt
	prompt := req.MainPrompt
	if req.NegativePrompt != "" {
		prompt = fmt.Sprintf("%s. Avoid: %s", prompt, req.NegativePrompt)
	}

	body := openaiImageRequest{
		Model:  r.config.Model,
		Prompt: prompt,
		N:      1,
		Size:   imageSize(req.Width, req.Height),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", openaiImagesURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.config.APIKey))

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   ProviderOpenAI,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var imgResp openaiImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&imgResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(imgResp.Data) == 0 {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "no images returned"}
	}

	return &ImageResult{
		URL:      imgResp.Data[0].URL,
		Base64:   imgResp.Data[0].B64JSON,
		Provider: ProviderOpenAI,
		Model:    r.config.Model,
	}, nil
}

// maps requested dimensions to the nearest size the API supports
func imageSize(width, height int) string {
	switch {
	case width > height:
		return "1792x1024"
	case height > width:
		return "1024x1792"
	default:
		return "1024x1024"
	}
}
