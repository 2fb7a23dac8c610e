package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/filmrehberi/filmrehberi/internal/config"
	"github.com/filmrehberi/filmrehberi/internal/embeddings"
	"github.com/filmrehberi/filmrehberi/internal/llm"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// OpenRouter has no embedding endpoint, so it falls back to OpenAI.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(provider).EmbeddingModel
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 1024, ""), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required (used for embeddings when provider is %s)", provider)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, wrapped with a client-side rate limiter when one is configured.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return provider, nil
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `filmrehberi init` to create a config file", err)
	}
	return cfg, nil
}

// vectorDir returns the directory where the index snapshot lives.
func vectorDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "vectordb")
}

// historyPath returns the SQLite database path for conversation history.
func historyPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "history.db")
}

// openStore creates the vector store and loads the persisted index. A missing
// snapshot is an error; callers that tolerate an empty store load themselves.
func openStore(ctx context.Context, cfg *config.Config) (*vectordb.ChromemStore, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	dir := vectorDir(cfg)
	if err := store.Load(ctx, dir); err != nil {
		return nil, fmt.Errorf("loading vector store from %s: %w\nRun `filmrehberi ingest` first to build the index", dir, err)
	}
	return store, nil
}
