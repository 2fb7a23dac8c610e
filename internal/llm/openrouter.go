package llm

import (
	"context"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements Provider using the OpenRouter API, which is
// OpenAI-compatible. It wraps a go-openai client pointed at the OpenRouter
// endpoint instead of subclassing anything; configuration happens entirely
// at construction.
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider creates a new OpenRouter provider. An explicitly
// passed apiKey takes precedence; when empty, OPENROUTER_API_KEY is used.
func NewOpenRouterProvider(apiKey string, model string) *OpenRouterProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildChatRequest(p.model, req))
	if err != nil {
		return nil, err
	}
	return convertChatResponse(resp), nil
}
