package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/assistant"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSender() assistant.Sender {
	return assistant.Sender{
		UserID: uuid.New(),
		Email:  "eng@example.sa",
		Role:   domain.RoleEngineer,
	}
}

func TestSendSuccess(t *testing.T) {
	client := &fakeClient{resp: &chat.Response{Text: "the beam is adequate"}}
	s := assistant.NewStore(client)
	s.SetText("draft")

	result, err := s.Send(context.Background(), testSender(), "check this beam", nil)
	require.NoError(t, err)

	// A thread was created implicitly in the active mode.
	threads := s.Threads()
	require.Len(t, threads, 1)
	assert.Equal(t, domain.ModeChat, threads[0].Mode)

	assert.Equal(t, domain.RoleUser, result.UserMessage.Role)
	assert.Equal(t, "check this beam", result.UserMessage.Content)

	assert.Equal(t, domain.RoleAssistant, result.AssistantMessage.Role)
	assert.Equal(t, "the beam is adequate", result.AssistantMessage.Content)
	assert.False(t, result.AssistantMessage.IsStreaming)
	assert.Empty(t, result.AssistantMessage.Error)

	msgs := s.Messages(threads[0].ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, 2, threads[0].MessageCount)

	// Composer cleared, generating flag back down.
	assert.Empty(t, s.Composer().Text)
	assert.False(t, s.IsGenerating())
}

func TestSendUsesActiveThread(t *testing.T) {
	client := &fakeClient{resp: &chat.Response{Text: "ok"}}
	s := assistant.NewStore(client)
	th := s.CreateThread(mode.StructuralAnalysis)

	_, err := s.Send(context.Background(), testSender(), "load case?", nil)
	require.NoError(t, err)

	assert.Len(t, s.Threads(), 1)
	assert.Len(t, s.Messages(th.ID), 2)

	req := client.last()
	assert.Equal(t, th.ID, req.ThreadID)
	assert.Equal(t, domain.Mode(mode.StructuralAnalysis), req.Mode)
	assert.Equal(t, mode.SystemPrompt(mode.StructuralAnalysis), req.SystemPrompt)
	assert.Equal(t, domain.RoleEngineer, req.Role)
	assert.Equal(t, "ar", req.Language)
}

func TestSendUnauthenticated(t *testing.T) {
	s := newTestStore()

	_, err := s.Send(context.Background(), assistant.Sender{}, "hello", nil)

	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, s.Threads())
}

func TestSendFailureFallsBackInPlace(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream unavailable")}
	s := assistant.NewStore(client)

	result, err := s.Send(context.Background(), testSender(), "hello", nil)

	// Remote failure is absorbed, never surfaced.
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackReply, result.AssistantMessage.Content)
	assert.False(t, result.AssistantMessage.IsStreaming)
	assert.NotEmpty(t, result.AssistantMessage.Error)

	// The optimistic user message stays.
	threads := s.Threads()
	require.Len(t, threads, 1)
	msgs := s.Messages(threads[0].ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.False(t, s.IsGenerating())
}

func TestSendRejectedWhileGenerating(t *testing.T) {
	client := newBlockingClient("slow reply")
	s := assistant.NewStore(client)

	done := make(chan *assistant.SendResult, 1)
	go func() {
		result, err := s.Send(context.Background(), testSender(), "first", nil)
		if err != nil {
			done <- nil
			return
		}
		done <- result
	}()

	<-client.started
	require.True(t, s.IsGenerating())

	_, err := s.Send(context.Background(), testSender(), "second", nil)
	require.ErrorIs(t, err, domain.ErrGenerationInProgress)

	// The rejected send mutated nothing.
	threads := s.Threads()
	require.Len(t, threads, 1)
	assert.Len(t, s.Messages(threads[0].ID), 2)

	close(client.release)
	result := <-done
	require.NotNil(t, result)
	assert.Equal(t, "slow reply", result.AssistantMessage.Content)
	assert.False(t, s.IsGenerating())
}

func TestStopGenerationIgnoresLateCompletion(t *testing.T) {
	client := newBlockingClient("late reply")
	s := assistant.NewStore(client)

	done := make(chan *assistant.SendResult, 1)
	go func() {
		result, _ := s.Send(context.Background(), testSender(), "question", nil)
		done <- result
	}()

	<-client.started
	s.StopGeneration()

	assert.False(t, s.IsGenerating())

	result := <-done
	require.NotNil(t, result)

	// The late completion must not overwrite the stopped placeholder.
	threads := s.Threads()
	require.Len(t, threads, 1)
	msgs := s.Messages(threads[0].ID)
	require.Len(t, msgs, 2)
	assert.Empty(t, msgs[1].Content)
	assert.False(t, msgs[1].IsStreaming)
	assert.False(t, s.IsGenerating())
}

func TestSendBoundsHistoryWindow(t *testing.T) {
	client := &fakeClient{resp: &chat.Response{Text: "ok"}}
	s := assistant.NewStore(client)
	th := s.CreateThread(domain.ModeChat)

	for i := 0; i < 25; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		s.AppendMessage(domain.Message{
			ThreadID: th.ID,
			Role:     role,
			Content:  fmt.Sprintf("message %d", i),
		})
	}

	_, err := s.Send(context.Background(), testSender(), "latest", nil)
	require.NoError(t, err)

	req := client.last()
	assert.Equal(t, "latest", req.Message)
	require.Len(t, req.History, chat.HistoryWindow)
	assert.Equal(t, "message 15", req.History[0].Content)
	assert.Equal(t, "message 24", req.History[len(req.History)-1].Content)
}

func TestSendSurvivesThreadDeletionMidFlight(t *testing.T) {
	client := newBlockingClient("orphaned reply")
	s := assistant.NewStore(client)
	th := s.CreateThread(domain.ModeChat)

	done := make(chan *assistant.SendResult, 1)
	go func() {
		result, _ := s.Send(context.Background(), testSender(), "question", nil)
		done <- result
	}()

	<-client.started
	s.DeleteThread(th.ID)
	close(client.release)

	select {
	case result := <-done:
		require.NotNil(t, result)
		assert.False(t, result.AssistantMessage.IsStreaming)
	case <-time.After(5 * time.Second):
		t.Fatal("send did not return after thread deletion")
	}

	assert.Empty(t, s.Threads())
	assert.False(t, s.IsGenerating())
}
