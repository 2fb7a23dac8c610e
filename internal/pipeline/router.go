package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/filmrehberi/filmrehberi/internal/llm"
)

// ErrBadIntent marks a completion response that does not conform to the
// intent schema. It propagates to the caller; no branch can be chosen
// without a valid intent.
var ErrBadIntent = errors.New("intent response does not conform to schema")

// intentSchema is the structured output the classifier expects from the
// completion service.
type intentSchema struct {
	Intent string `json:"intent"`
}

// Classify labels the message as film_query or general_chat using the
// completion service in JSON mode. The schema is a single tagged enum
// field; anything else is an ErrBadIntent.
func (p *Pipeline) Classify(ctx context.Context, message string) (Intent, error) {
	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: routerSystemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		// Deterministic labels; the persona temperature is for generation.
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return "", fmt.Errorf("intent completion: %w", err)
	}

	var out intentSchema
	raw := strings.TrimSpace(resp.Content)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("%w: parsing %q: %v", ErrBadIntent, truncateForError(raw), err)
	}

	switch Intent(out.Intent) {
	case IntentFilmQuery:
		return IntentFilmQuery, nil
	case IntentGeneralChat:
		return IntentGeneralChat, nil
	default:
		return "", fmt.Errorf("%w: unknown intent %q", ErrBadIntent, out.Intent)
	}
}

func truncateForError(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
