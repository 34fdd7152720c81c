package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/docfinder/internal/api/handlers"
	"github.com/medassist/docfinder/internal/domain/entities"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

type stubChatProvider struct {
	reply      *entities.Reply
	err        error
	sessionID  string
	turnCalls  int
	lastText   string
	lastSessID string
}

func (s *stubChatProvider) NewSession() string {
	return s.sessionID
}

func (s *stubChatProvider) HandleTurn(ctx context.Context, sessionID, userText string) (*entities.Reply, error) {
	s.turnCalls++
	s.lastSessID = sessionID
	s.lastText = userText
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func TestChatHandler_CreateSession(t *testing.T) {
	chat := &stubChatProvider{sessionID: "session-123"}
	handler := handlers.NewChatHandler(chat, nil)

	req := httptest.NewRequest("POST", "/api/sessions", nil)
	w := httptest.NewRecorder()

	handler.CreateSession(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "session-123", response["session_id"])
}

func TestChatHandler_Chat_Success(t *testing.T) {
	chat := &stubChatProvider{
		reply: &entities.Reply{
			Kind: entities.ReplyRecommendation,
			Text: "Here are psychiatrists in Lahore.",
		},
	}
	handler := handlers.NewChatHandler(chat, nil)

	body := `{"session_id":"session-123","message":"I need a psychiatrist in Lahore"}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, chat.turnCalls)
	assert.Equal(t, "session-123", chat.lastSessID)
	assert.Equal(t, "I need a psychiatrist in Lahore", chat.lastText)

	var response entities.Reply
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.ReplyRecommendation, response.Kind)
	assert.Equal(t, "Here are psychiatrists in Lahore.", response.Text)
}

func TestChatHandler_Chat_InvalidPayload(t *testing.T) {
	handler := handlers.NewChatHandler(&stubChatProvider{}, nil)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_Chat_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no session", `{"message":"hello"}`},
		{"no message", `{"session_id":"session-123"}`},
		{"blank message", `{"session_id":"session-123","message":"   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chat := &stubChatProvider{}
			handler := handlers.NewChatHandler(chat, nil)

			req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.Chat(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, chat.turnCalls)
		})
	}
}

func TestChatHandler_Chat_ServiceError(t *testing.T) {
	chat := &stubChatProvider{err: apperrors.NewInternalError("query failed", nil)}
	handler := handlers.NewChatHandler(chat, nil)

	body := `{"session_id":"session-123","message":"I need a dermatologist"}`
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Chat(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "internal server error", response["error"])
}
