package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const apiRequestTimeout = 150 * time.Second

// manages HTTP requests to the generation REST API
type APIClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new API client from environment configuration
func NewAPIClient() *APIClient {
	endpoint := os.Getenv("ATELIER_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &APIClient{
		endpoint: endpoint,
		token:    os.Getenv("ATELIER_API_TOKEN"),
		httpClient: &http.Client{
			Timeout: apiRequestTimeout,
		},
	}
}

type generateRequest struct {
	Spec          specPayload `json:"spec"`
	ExploreMode   *bool       `json:"explore_mode,omitempty"`
	UserModifiers []string    `json:"user_modifiers,omitempty"`
	TemplateID    string      `json:"template_id,omitempty"`
}

// a fixed playground analysis record; the point is exercising the prompt
// engine, not the vision service
type specPayload struct {
	ImageID     string            `json:"image_id"`
	GarmentType string            `json:"garment_type"`
	Attributes  map[string]string `json:"attributes"`
	Colors      map[string]string `json:"colors"`
	Style       map[string]string `json:"style"`
	Confidence  float64           `json:"confidence"`
}

type generateResponse struct {
	Generation *GenerationView `json:"generation"`
}

type feedbackRequest struct {
	GenerationID string `json:"generation_id"`
	FeedbackType string `json:"feedback_type"`
}

type feedbackResponse struct {
	Accepted bool `json:"accepted"`
	Deltas   []struct {
		Token    string  `json:"token"`
		NewScore float64 `json:"new_score"`
	} `json:"deltas"`
}

type templatesResponse struct {
	Templates []struct {
		ID string `json:"id"`
	} `json:"templates"`
}

func (c *APIClient) Generate(ctx context.Context, exploreMode bool, templateID string, modifiers []string) (*GenerationView, error) {
	payload := generateRequest{
		Spec: specPayload{
			ImageID:     "studio-playground",
			GarmentType: "dress",
			Attributes:  map[string]string{"silhouette": "a-line", "fabrication": "silk"},
			Colors:      map[string]string{"primary": "emerald"},
			Style:       map[string]string{"aesthetic": "contemporary", "mood": "polished"},
			Confidence:  0.95,
		},
		ExploreMode:   &exploreMode,
		UserModifiers: modifiers,
		TemplateID:    templateID,
	}

	var resp generateResponse
	if err := c.post(ctx, "/api/v1/generate", payload, &resp); err != nil {
		return nil, err
	}

	if resp.Generation == nil {
		return nil, fmt.Errorf("empty generation in response")
	}

	return resp.Generation, nil
}

func (c *APIClient) Feedback(ctx context.Context, generationID, feedbackType string) (int, error) {
	payload := feedbackRequest{
		GenerationID: generationID,
		FeedbackType: feedbackType,
	}

	var resp feedbackResponse
	if err := c.post(ctx, "/api/v1/feedback", payload, &resp); err != nil {
		return 0, err
	}

	return len(resp.Deltas), nil
}

func (c *APIClient) Templates(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"/api/v1/templates", nil)
	if err != nil {
		return nil, err
	}

	var resp templatesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Templates))
	for _, t := range resp.Templates {
		ids = append(ids, t.ID)
	}

	return ids, nil
}

func (c *APIClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
