package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
)

const maxChatMessageLength = 2000

// ChatProvider defines the conversation operations used by the handler.
type ChatProvider interface {
	NewSession() string
	HandleTurn(ctx context.Context, sessionID, userText string) (*entities.Reply, error)
}

// ChatHandler handles conversational HTTP requests.
type ChatHandler struct {
	chat    ChatProvider
	metrics *observability.Metrics
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatProvider, metrics *observability.Metrics) *ChatHandler {
	return &ChatHandler{
		chat:    chat,
		metrics: metrics,
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// CreateSession handles POST /api/sessions
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := h.chat.NewSession()

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"session_id": sessionID,
	})
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Message = strings.TrimSpace(payload.Message)
	if payload.SessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if payload.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(payload.Message) > maxChatMessageLength {
		respondWithError(w, http.StatusBadRequest, "message is too long")
		return
	}

	reply, err := h.chat.HandleTurn(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.metrics != nil {
		observability.RecordTurnMetric(r.Context(), h.metrics, string(reply.Kind))
	}

	respondWithJSON(w, http.StatusOK, reply)
}
