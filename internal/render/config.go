package render

import (
	"fmt"
	"os"
)

// loadConfig loads render provider configuration from environment variables
func loadConfig() (*Config, error) {
	provider := Provider(os.Getenv("RENDER_PROVIDER"))
	if provider == "" {
		provider = ProviderOpenAI // default
	}

	if provider != ProviderOpenAI && provider != ProviderStability {
		return nil, fmt.Errorf("unsupported render provider: %s", provider)
	}

	apiKey := os.Getenv("RENDER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RENDER_API_KEY environment variable is required")
	}

	return &Config{
		Provider: provider,
		APIKey:   apiKey,
		Model:    os.Getenv("RENDER_MODEL"),
	}, nil
}

// NewRenderer creates a renderer with auto-configuration from environment
// variables
func NewRenderer() (Renderer, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load render config: %w", err)
	}

	return NewRendererWithConfig(config)
}

// NewRendererWithConfig creates a renderer with explicit configuration
func NewRendererWithConfig(config *Config) (Renderer, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIRenderer(*config), nil
	case ProviderStability:
		return NewStabilityRenderer(*config), nil
	default:
		return nil, fmt.Errorf("unsupported render provider: %s", config.Provider)
	}
}
