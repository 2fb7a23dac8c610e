package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	Message   string `json:"message"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Answer    string `json:"answer,omitempty"`
	Intent    string `json:"intent,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}
		if req.Message == "" {
			s.sendWSError(conn, req.SessionID, "message is required")
			continue
		}

		resp, err := s.runTurn(r.Context(), "ws", chatRequest{SessionID: req.SessionID, Message: req.Message})
		if err != nil {
			s.sendWSError(conn, req.SessionID, err.Error())
			continue
		}

		s.sendWS(conn, wsResponse{
			Type:      "response",
			SessionID: resp.SessionID,
			Answer:    resp.Answer,
			Intent:    resp.Intent,
		})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, message string) {
	s.sendWS(conn, wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Error:     message,
	})
}
