package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/filmrehberi/filmrehberi/internal/history"
	"github.com/filmrehberi/filmrehberi/internal/pipeline"
)

// chatRequest is the incoming chat message. SessionID may be empty for a
// new conversation.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// chatResponse is the reply to one chat message. Answer is always set:
// pipeline failures are converted into a generic error text rather than an
// HTTP error, so clients render them like any other assistant message.
type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Intent    string `json:"intent,omitempty"`
	Context   string `json:"context,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
		return
	}

	resp, err := s.runTurn(r.Context(), "api", req)
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("server: encoding chat response: %v", err)
	}
}

// runTurn resolves the session, runs the pipeline with the stored history
// and records the exchange. Only session-store failures surface as errors;
// pipeline failures become the answer text.
func (s *Server) runTurn(ctx context.Context, source string, req chatRequest) (*chatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sess, err := s.sessions.CreateSession(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		sessionID = sess.ID
	} else {
		sess, err := s.sessions.GetSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if sess == nil {
			return nil, fmt.Errorf("unknown session %s", sessionID)
		}
	}

	turns, err := s.sessions.Turns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	st, runErr := s.pipe.Run(ctx, pipeline.NewStateWithHistory(req.Message, toPipelineTurns(turns)))

	resp := &chatResponse{
		SessionID: sessionID,
		Intent:    string(st.Intent),
		Context:   st.Context,
	}
	if runErr != nil {
		resp.Answer = fmt.Sprintf("Hata: %v", runErr)
	} else {
		resp.Answer = st.FinalText()
	}

	if err := s.sessions.AppendTurn(ctx, sessionID, "user", req.Message, string(st.Intent)); err != nil {
		log.Printf("server: recording user turn: %v", err)
	}
	if err := s.sessions.AppendTurn(ctx, sessionID, "assistant", resp.Answer, ""); err != nil {
		log.Printf("server: recording assistant turn: %v", err)
	}

	return resp, nil
}

func toPipelineTurns(turns []history.Turn) []pipeline.Turn {
	out := make([]pipeline.Turn, len(turns))
	for i, t := range turns {
		out[i] = pipeline.Turn{Role: t.Role, Content: t.Content}
	}
	return out
}
