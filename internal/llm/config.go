// Package llm provides the completion-service client used by the analysis
// agents. It centralizes model configuration so the cheap single-pass
// analysis and the full agent pipeline can run on different tiers.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierQuick is for the cheap single-pass analysis that feeds the
	// escalation policy
	TierQuick ModelTier = "quick"
	// TierAgent is for the perspective and specialist scoring agents
	TierAgent ModelTier = "agent"
	// TierDeep is for ideology analysis and other long-context tasks
	TierDeep ModelTier = "deep"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierQuick: "gemini-2.5-flash-lite",
			TierAgent: "gemini-2.5-flash",
			TierDeep:  "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try agent, then quick
	if model, ok := c.Models[TierAgent]; ok {
		return model
	}
	if model, ok := c.Models[TierQuick]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
