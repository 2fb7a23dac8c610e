package config

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .filmrehberi.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Film Rehberi kurulumu. Birkaç soruyla yapılandırmayı oluşturalım.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select completion provider",
		Items: []string{"openrouter", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	preset := GetPreset(cfg.Provider)

	// 2. Model, defaulting to the provider preset.
	modelPrompt := promptui.Prompt{
		Label:     "Completion model",
		Default:   preset.Model,
		AllowEdit: true,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model prompt: %w", err)
	}
	cfg.Model = model

	// 3. Embedding provider. OpenRouter has no embeddings endpoint, so it
	// defaults to OpenAI.
	embeddingProvider := cfg.Provider
	if embeddingProvider == ProviderOpenRouter {
		embeddingProvider = ProviderOpenAI
	}
	cfg.EmbeddingProvider = embeddingProvider
	cfg.EmbeddingModel = GetPreset(embeddingProvider).EmbeddingModel

	// 4. Dataset file.
	datasetPrompt := promptui.Prompt{
		Label:     "Movies dataset (JSON)",
		Default:   cfg.DatasetPath,
		AllowEdit: true,
	}
	dataset, err := datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset prompt: %w", err)
	}
	cfg.DatasetPath = dataset

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".filmrehberi.yml"); err != nil {
		return nil, err
	}
	fmt.Println()
	fmt.Println("Wrote .filmrehberi.yml")

	if key := APIKeyEnvVar(cfg.Provider); key != "" && os.Getenv(key) == "" {
		fmt.Printf("Note: %s is not set in your environment.\n", key)
	}

	return cfg, nil
}
