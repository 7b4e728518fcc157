package config

import "os"

// LLMConfig selects and parameterizes the external completion provider used
// by the roadmap generator.  It is loaded once and passed explicitly into
// generation calls; nothing holds it as mutable global state.
type LLMConfig struct {
    Provider string // "openai", "anthropic" or "gemini"
    APIKey   string // provider API key; AI generation is disabled when empty
    Model    string // provider-specific model identifier
    BaseURL  string // override for the provider endpoint, mainly for tests
}

// LoadLLMConfig reads the LLM provider settings from the environment.
// Defaults target OpenAI; the base URL default is resolved per provider by
// the llm client so it is left empty here unless overridden.
func LoadLLMConfig() LLMConfig {
    return LLMConfig{
        Provider: getenv("LLM_PROVIDER", "openai"),
        APIKey:   os.Getenv("LLM_API_KEY"),
        Model:    getenv("LLM_MODEL", "gpt-4o-mini"),
        BaseURL:  os.Getenv("LLM_BASE_URL"),
    }
}
