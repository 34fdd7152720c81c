package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/providers"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
)

// TranscriptService keeps the per-session conversation transcript in the
// cache, bounded to the most recent turns. The transcript is opaque
// context for the response composer; nothing here parses it.
type TranscriptService struct {
	cache      providers.CacheProvider
	maxTurns   int
	ttlSeconds int
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(cache providers.CacheProvider, maxTurns, ttlSeconds int) *TranscriptService {
	return &TranscriptService{
		cache:      cache,
		maxTurns:   maxTurns,
		ttlSeconds: ttlSeconds,
	}
}

func transcriptKey(sessionID string) string {
	return fmt.Sprintf("session:transcript:%s", sessionID)
}

// NewSession creates a fresh session identifier.
func (s *TranscriptService) NewSession() string {
	return uuid.NewString()
}

// History returns the stored transcript for a session, oldest first.
// A missing or corrupt entry yields an empty transcript, not an error.
func (s *TranscriptService) History(ctx context.Context, sessionID string) []entities.TurnMessage {
	data, err := s.cache.Get(ctx, transcriptKey(sessionID))
	if err != nil {
		return nil
	}

	var turns []entities.TurnMessage
	if err := json.Unmarshal(data, &turns); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Discarding corrupt transcript")
		return nil
	}
	return turns
}

// Append records one or more turns and trims the transcript to the
// configured bound.
func (s *TranscriptService) Append(ctx context.Context, sessionID string, turns ...entities.TurnMessage) error {
	history := append(s.History(ctx, sessionID), turns...)
	if s.maxTurns > 0 && len(history) > s.maxTurns {
		history = history[len(history)-s.maxTurns:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, transcriptKey(sessionID), data, s.ttlSeconds)
}

// Reset discards a session's transcript.
func (s *TranscriptService) Reset(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, transcriptKey(sessionID))
}
