package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/filmrehberi/filmrehberi/internal/llm"
)

// generalChat answers small talk in the movie-assistant persona. Unlike the
// grounded generator, a completion failure here propagates; the caller's
// generic error wrapper presents it.
func (p *Pipeline) generalChat(ctx context.Context, st State) (State, error) {
	prompt := fmt.Sprintf(chatPromptTmpl, st.Message)

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:       p.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: p.temperature,
	})
	if err != nil {
		return st, fmt.Errorf("general chat completion: %w", err)
	}

	st.Answer = strings.TrimSpace(resp.Content)
	return st, nil
}
