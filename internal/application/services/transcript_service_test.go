package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/docfinder/internal/adapters/cache"
	"github.com/medassist/docfinder/internal/domain/entities"
)

func newTestTranscripts(maxTurns int) *TranscriptService {
	return NewTranscriptService(cache.NewMemoryAdapter(), maxTurns, 3600)
}

func TestTranscript_AppendAndHistory(t *testing.T) {
	svc := newTestTranscripts(10)
	ctx := context.Background()
	session := svc.NewSession()

	require.NoError(t, svc.Append(ctx, session,
		entities.TurnMessage{Role: entities.RoleUser, Content: "hello"},
		entities.TurnMessage{Role: entities.RoleAssistant, Content: "hi, how can I help?"},
	))

	history := svc.History(ctx, session)
	require.Len(t, history, 2)
	assert.Equal(t, entities.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, entities.RoleAssistant, history[1].Role)
}

func TestTranscript_BoundedToMaxTurns(t *testing.T) {
	svc := newTestTranscripts(4)
	ctx := context.Background()
	session := svc.NewSession()

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Append(ctx, session,
			entities.TurnMessage{Role: entities.RoleUser, Content: "question"},
			entities.TurnMessage{Role: entities.RoleAssistant, Content: "answer"},
		))
	}

	history := svc.History(ctx, session)
	assert.Len(t, history, 4)
}

func TestTranscript_UnknownSessionIsEmpty(t *testing.T) {
	svc := newTestTranscripts(10)

	history := svc.History(context.Background(), "missing-session")
	assert.Empty(t, history)
}

func TestTranscript_Reset(t *testing.T) {
	svc := newTestTranscripts(10)
	ctx := context.Background()
	session := svc.NewSession()

	require.NoError(t, svc.Append(ctx, session,
		entities.TurnMessage{Role: entities.RoleUser, Content: "hello"},
	))
	require.NoError(t, svc.Reset(ctx, session))

	assert.Empty(t, svc.History(ctx, session))
}

func TestTranscript_SessionIDsAreUnique(t *testing.T) {
	svc := newTestTranscripts(10)
	assert.NotEqual(t, svc.NewSession(), svc.NewSession())
}
