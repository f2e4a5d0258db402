package chat_test

import (
	"strings"
	"testing"

	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt(t *testing.T) {
	req := chat.Request{
		SystemPrompt: "You are a structural engineering assistant.",
		Role:         domain.RoleEngineer,
		Language:     "ar",
		Attachments: []domain.Attachment{
			{Name: "soil-report.pdf", Mime: "application/pdf"},
		},
	}

	prompt := chat.BuildSystemPrompt(req)

	assert.True(t, strings.HasPrefix(prompt, "You are a structural engineering assistant."))
	assert.Contains(t, prompt, "engineer")
	assert.Contains(t, prompt, "ar")
	assert.Contains(t, prompt, "soil-report.pdf")
}

func TestBuildSystemPromptMinimal(t *testing.T) {
	prompt := chat.BuildSystemPrompt(chat.Request{SystemPrompt: "base"})
	assert.Equal(t, "base", prompt)
}

func TestBuildTurnsAppendsUserMessage(t *testing.T) {
	req := chat.Request{
		Message: "what about seismic loads?",
		History: []chat.Turn{
			{Role: domain.RoleUser, Content: "check this beam"},
			{Role: domain.RoleAssistant, Content: "the beam is adequate"},
		},
	}

	turns := chat.BuildTurns(req)

	require.Len(t, turns, 3)
	assert.Equal(t, "check this beam", turns[0].Content)
	assert.Equal(t, domain.RoleUser, turns[2].Role)
	assert.Equal(t, "what about seismic loads?", turns[2].Content)
}

func TestBuildTurnsBoundsHistory(t *testing.T) {
	history := make([]chat.Turn, 30)
	for i := range history {
		history[i] = chat.Turn{Role: domain.RoleUser, Content: string(rune('a' + i))}
	}

	turns := chat.BuildTurns(chat.Request{Message: "new", History: history})

	require.Len(t, turns, chat.HistoryWindow+1)
	assert.Equal(t, history[len(history)-chat.HistoryWindow].Content, turns[0].Content)
	assert.Equal(t, "new", turns[len(turns)-1].Content)
}
