package llm

import "time"

// ModelConfig is one entry in the fallback chain. Priority defines a
// strict total order within a chain: lower values are attempted first,
// regardless of slice position.
type ModelConfig struct {
	Provider   string // "openai_compat", "anthropic", "gemini", "local"
	Priority   int    // lower = earlier
	BaseURL    string // only meaningful for "openai_compat" and "local"
	Model      string
	APIKey     string
	MaxRetries int
	Timeout    time.Duration // 0 uses defaultTimeoutFor(Provider)
}

// Config is the ordered fallback-chain configuration, normally loaded
// from YAML at startup (matching the teacher's agent.Config/AgentConfig
// yaml-tagged shape).
type Config struct {
	Models []ModelConfig `yaml:"models"`
}

// defaultTimeoutFor returns the per-call timeout bound for a provider tag
// when its ModelConfig doesn't set one explicitly: 30s for
// OpenAI-compatible endpoints, 120s for local models, 60s otherwise.
func defaultTimeoutFor(provider string) time.Duration {
	switch provider {
	case "local":
		return 120 * time.Second
	case "anthropic", "gemini":
		return 60 * time.Second
	default: // "openai_compat" and the unset/empty default
		return 30 * time.Second
	}
}

// buildProvider constructs the concrete Provider for one ModelConfig.
func buildProvider(cfg ModelConfig) Provider {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Model, cfg.APIKey)
	case "gemini":
		return NewGeminiProvider(cfg.Model, cfg.APIKey)
	case "local":
		return NewLocalProvider(cfg.BaseURL, cfg.Model)
	default:
		return NewOpenAICompatProvider(cfg.BaseURL, cfg.Model, cfg.APIKey)
	}
}
