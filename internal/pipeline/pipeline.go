package pipeline

import (
	"context"
	"fmt"

	"github.com/filmrehberi/filmrehberi/internal/config"
	"github.com/filmrehberi/filmrehberi/internal/llm"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// Pipeline routes a user message through intent classification and the
// matching stage sequence:
//
//	Start -> Classify -> MovieRetrieve -> Generate -> End
//	                  \-> GeneralChat -------------> End
//
// The classifier decides the single branch point; everything after it is
// unconditional. Stages execute sequentially and share nothing across
// invocations except the read-only provider and store handles, so one
// Pipeline is safe for concurrent Run calls.
type Pipeline struct {
	provider    llm.Provider
	store       vectordb.VectorStore
	model       string
	temperature float64
	topK        int
}

// New creates a Pipeline from the configured provider and vector store.
func New(provider llm.Provider, store vectordb.VectorStore, cfg *config.Config) *Pipeline {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 6
	}
	return &Pipeline{
		provider:    provider,
		store:       store,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topK:        topK,
	}
}

// Run executes one pipeline invocation and returns the terminal state.
// Classification and retrieval failures propagate; grounded-generation
// failures are recovered inside the generate stage. Exactly one of the two
// generator stages runs.
func (p *Pipeline) Run(ctx context.Context, st State) (State, error) {
	intent, err := p.Classify(ctx, st.Message)
	if err != nil {
		return st, fmt.Errorf("intent classification: %w", err)
	}
	st.Intent = intent

	switch intent {
	case IntentFilmQuery:
		st, err = p.retrieve(ctx, st)
		if err != nil {
			return st, err
		}
		return p.generate(ctx, st)
	case IntentGeneralChat:
		return p.generalChat(ctx, st)
	default:
		// Classify only returns the two known intents.
		return st, fmt.Errorf("unroutable intent %q", intent)
	}
}

// Ask is a convenience wrapper creating a fresh state for one turn.
func (p *Pipeline) Ask(ctx context.Context, message string, history []Turn) (State, error) {
	return p.Run(ctx, NewStateWithHistory(message, history))
}
