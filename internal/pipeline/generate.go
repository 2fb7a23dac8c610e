package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/filmrehberi/filmrehberi/internal/llm"
)

// generate produces the grounded answer from the question and the assembled
// context. This is the only stage with local error recovery: a completion
// failure becomes a user-visible degraded answer with the error detail
// embedded, Generation stays empty, and the pipeline still reaches its
// terminal state.
func (p *Pipeline) generate(ctx context.Context, st State) (State, error) {
	prompt := fmt.Sprintf(groundedPromptTmpl, strings.TrimSpace(st.Message), st.Context)

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:       p.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: p.temperature,
	})
	if err != nil {
		st.Answer = fmt.Sprintf("Bir hata oluştu: %v", err)
		st.Generation = ""
		return st, nil
	}

	answer := strings.TrimSpace(resp.Content)
	st.Answer = answer
	st.Generation = answer
	return st, nil
}
