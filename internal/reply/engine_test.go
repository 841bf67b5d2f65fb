package reply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplysight/assistant-core/internal/assist/model"
)

func offlineEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), "", "", model.ReplyConfig{
		Model:       "gemini-2.5-flash-lite",
		MaxTokens:   1000,
		Temperature: 0.4,
	})
	require.NoError(t, err)
	return e
}

func TestNewEngineWithoutKeyStartsOffline(t *testing.T) {
	e := offlineEngine(t)
	assert.False(t, e.Available())

	// The rendered system prompt names the destinations the app can open.
	assert.Contains(t, e.systemPrompt, "Active suppliers workspace")
	assert.Contains(t, e.systemPrompt, "Quick sync")
}

func TestReplyFallsBackToApologyWhenOffline(t *testing.T) {
	e := offlineEngine(t)

	got := e.Reply(context.Background(), []model.Message{
		{Role: model.RoleUser, Content: "hello"},
	})
	assert.Equal(t, Apology, got)
}

func TestBuildMessages(t *testing.T) {
	e := &Engine{systemPrompt: "sys"}

	transcript := []model.Message{
		{Role: model.RoleUser, Content: "open settings"},
		{Role: model.RoleAssistant, Content: "Opening settings."},
		{Role: model.RoleAssistant, Content: ""},
		{Role: model.RoleUser, Content: "thanks"},
	}

	msgs := e.buildMessages(transcript)
	require.Len(t, msgs, 4) // system + 3 non-empty turns
	assert.Equal(t, "sys", msgs[0].Content)
	assert.Equal(t, "open settings", msgs[1].Content)
	assert.Equal(t, "Opening settings.", msgs[2].Content)
	assert.Equal(t, "thanks", msgs[3].Content)
}

func TestBuildMessagesBoundsHistory(t *testing.T) {
	e := &Engine{systemPrompt: "sys"}

	transcript := make([]model.Message, maxHistoryMessages+8)
	for i := range transcript {
		transcript[i] = model.Message{Role: model.RoleUser, Content: "m"}
	}

	msgs := e.buildMessages(transcript)
	assert.Len(t, msgs, maxHistoryMessages+1)
}

func TestRecentFailure(t *testing.T) {
	e := &Engine{}
	assert.False(t, e.recentFailure(30*time.Second))

	e.lastFailure.Store(time.Now().UnixNano())
	assert.True(t, e.recentFailure(30*time.Second))

	e.lastFailure.Store(time.Now().Add(-time.Minute).UnixNano())
	assert.False(t, e.recentFailure(30*time.Second))
}
