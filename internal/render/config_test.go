package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsToOpenAI(t *testing.T) {
	t.Setenv("RENDER_PROVIDER", "")
	t.Setenv("RENDER_API_KEY", "test-key")
	t.Setenv("RENDER_MODEL", "")

	cfg, err := loadConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestLoadConfig_SingleKeyVariableForEveryProvider(t *testing.T) {
	t.Setenv("RENDER_API_KEY", "test-key")

	for _, provider := range []Provider{ProviderOpenAI, ProviderStability} {
		t.Setenv("RENDER_PROVIDER", string(provider))

		cfg, err := loadConfig()

		require.NoError(t, err)
		assert.Equal(t, provider, cfg.Provider)
		assert.Equal(t, "test-key", cfg.APIKey, "provider %s must read RENDER_API_KEY", provider)
	}
}

func TestLoadConfig_MissingKeyRejected(t *testing.T) {
	t.Setenv("RENDER_PROVIDER", "openai")
	t.Setenv("RENDER_API_KEY", "")

	_, err := loadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_API_KEY")
}

func TestLoadConfig_UnknownProviderRejected(t *testing.T) {
	t.Setenv("RENDER_PROVIDER", "midjourney")
	t.Setenv("RENDER_API_KEY", "test-key")

	_, err := loadConfig()

	assert.Error(t, err)
}

func TestNewRendererWithConfig_ProviderSwitch(t *testing.T) {
	openai, err := NewRendererWithConfig(&Config{Provider: ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, openai.Model())

	stability, err := NewRendererWithConfig(&Config{Provider: ProviderStability, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultStabilityModel, stability.Model())

	_, err = NewRendererWithConfig(nil)
	assert.Error(t, err)
}
