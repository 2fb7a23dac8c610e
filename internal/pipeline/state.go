package pipeline

import (
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	// IntentFilmQuery routes the message through retrieval and grounded
	// generation.
	IntentFilmQuery Intent = "film_query"
	// IntentGeneralChat routes the message to the small-talk generator.
	IntentGeneralChat Intent = "general_chat"
)

// Turn is one prior exchange carried in the conversation history.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// State is the conversation record threaded through the pipeline stages.
// Stages receive it by value and return an updated copy; fields are only
// ever added, never dropped, between stages.
type State struct {
	// Message is the raw user input, set once at pipeline entry.
	Message string
	// Intent is set exactly once, by the classifier, before branching.
	Intent Intent
	// RetrievedDocs is set only on the film-query branch.
	RetrievedDocs []vectordb.SearchResult
	// Context is the text assembled from RetrievedDocs; set only on the
	// film-query branch and never empty once set.
	Context string
	// Generation mirrors Answer on successful grounded generation and is
	// empty when generation failed and was recovered.
	Generation string
	// Answer is the final reply, set by whichever generator ran.
	Answer string
	// History holds prior turns. The caller owns carrying it forward
	// across pipeline invocations.
	History []Turn
}

// NewState creates a fresh State for one user turn. Every instance gets its
// own empty history slice.
func NewState(message string) State {
	return State{
		Message: message,
		History: []Turn{},
	}
}

// NewStateWithHistory creates a State carrying prior turns. The history is
// copied so the pipeline never aliases caller-owned memory.
func NewStateWithHistory(message string, history []Turn) State {
	st := NewState(message)
	if len(history) > 0 {
		st.History = make([]Turn, len(history))
		copy(st.History, history)
	}
	return st
}

// FinalText returns the text a caller should display: the answer when
// present, otherwise the context, otherwise a fixed no-answer message.
func (s State) FinalText() string {
	if s.Answer != "" {
		return s.Answer
	}
	if s.Context != "" {
		return s.Context
	}
	return NoAnswerMessage
}
