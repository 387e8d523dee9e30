package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierQuick))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierAgent))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierDeep))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierQuick: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierAgent, then TierQuick
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierDeep))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel(TierAgent, "custom-model")

	// Original untouched, copy overridden
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierAgent))
	assert.Equal(t, "custom-model", custom.GetModel(TierAgent))
	assert.Equal(t, "gemini-2.5-pro", custom.GetModel(TierDeep))
}
