package config

// ModelPreset describes the completion and embedding models recommended for
// a provider.
type ModelPreset struct {
	Model          string
	EmbeddingModel string
}

// modelPresets maps each provider to its recommended model choices. The
// OpenRouter preset mirrors the model the assistant was tuned against.
var modelPresets = map[ProviderType]ModelPreset{
	ProviderOpenRouter: {Model: "openai/gpt-5-nano", EmbeddingModel: "text-embedding-3-small"},
	ProviderOpenAI:     {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama:     {Model: "llama3", EmbeddingModel: "bge-m3"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenRouter,
		Model:             "openai/gpt-5-nano",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		Temperature:       0.7,
		TopK:              6,
		DataDir:           ".filmrehberi",
		DatasetPath:       "all_movies_reviews.json",
		RequestsPerMinute: 0,
		Server: ServerConfig{
			Port:     8787,
			AllowAll: false,
		},
	}
}

// GetPreset returns the model preset for the given provider.
// Returns the OpenRouter preset if the provider is not known.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := modelPresets[provider]; ok {
		return preset
	}
	return modelPresets[ProviderOpenRouter]
}
