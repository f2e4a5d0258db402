package assistant_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/assistant"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is a scripted chat.Client that records the last request.
type fakeClient struct {
	mu      sync.Mutex
	resp    *chat.Response
	err     error
	lastReq chat.Request
	calls   int
}

func (c *fakeClient) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastReq = req
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func (c *fakeClient) last() chat.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReq
}

// blockingClient holds the completion open until released, so tests can
// observe the store mid-generation.
type blockingClient struct {
	started chan struct{}
	release chan struct{}
	resp    *chat.Response
}

func newBlockingClient(text string) *blockingClient {
	return &blockingClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
		resp:    &chat.Response{Text: text},
	}
}

func (c *blockingClient) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	close(c.started)
	select {
	case <-c.release:
		return c.resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newTestStore() *assistant.Store {
	return assistant.NewStore(&fakeClient{resp: &chat.Response{Text: "ok"}})
}

func TestNewStoreDefaults(t *testing.T) {
	s := newTestStore()

	assert.Empty(t, s.Threads())
	assert.Nil(t, s.ActiveThreadID())
	assert.Equal(t, domain.ModeChat, s.ActiveMode())
	assert.False(t, s.IsGenerating())

	c := s.Composer()
	assert.Equal(t, "ar", c.Language)
	assert.Equal(t, mode.DefaultHint, c.Hint)
	assert.Empty(t, c.Text)

	assert.Equal(t, domain.DefaultSettings(), s.Settings())
}

func TestAppendMessageUpdatesThreadCaches(t *testing.T) {
	s := newTestStore()
	th := s.CreateThread(domain.ModeChat)

	msg := s.AppendMessage(domain.Message{
		ThreadID: th.ID,
		Role:     domain.RoleUser,
		Content:  "first question",
	})
	require.NotEqual(t, uuid.Nil, msg.ID)
	require.False(t, msg.CreatedAt.IsZero())

	got, ok := s.Thread(th.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.MessageCount)
	assert.Equal(t, "first question", got.LastMessage)

	s.AppendMessage(domain.Message{
		ThreadID: th.ID,
		Role:     domain.RoleAssistant,
		Content:  "an answer",
	})
	got, _ = s.Thread(th.ID)
	assert.Equal(t, 2, got.MessageCount)
	assert.Equal(t, "an answer", got.LastMessage)
}

func TestAppendMessageTruncatesPreview(t *testing.T) {
	s := newTestStore()
	th := s.CreateThread(domain.ModeChat)

	long := strings.Repeat("م", 150)
	s.AppendMessage(domain.Message{ThreadID: th.ID, Role: domain.RoleUser, Content: long})

	got, _ := s.Thread(th.ID)
	assert.Equal(t, 100, len([]rune(got.LastMessage)))
	assert.True(t, strings.HasPrefix(long, got.LastMessage))
}

func TestPatchMessage(t *testing.T) {
	s := newTestStore()
	th := s.CreateThread(domain.ModeChat)

	msg := s.AppendMessage(domain.Message{
		ThreadID:    th.ID,
		Role:        domain.RoleAssistant,
		IsStreaming: true,
	})

	content := "final text"
	streaming := false
	s.PatchMessage(msg.ID, domain.MessagePatch{Content: &content, IsStreaming: &streaming})

	msgs := s.Messages(th.ID)
	require.Len(t, msgs, 1)
	assert.Equal(t, "final text", msgs[0].Content)
	assert.False(t, msgs[0].IsStreaming)

	// Preview follows the latest message.
	got, _ := s.Thread(th.ID)
	assert.Equal(t, "final text", got.LastMessage)

	// A terminal message cannot re-enter the streaming state.
	backToStreaming := true
	s.PatchMessage(msg.ID, domain.MessagePatch{IsStreaming: &backToStreaming})
	msgs = s.Messages(th.ID)
	assert.False(t, msgs[0].IsStreaming)
}

func TestPatchMessageUnknownIDNoop(t *testing.T) {
	s := newTestStore()
	content := "x"
	s.PatchMessage(uuid.New(), domain.MessagePatch{Content: &content})
	assert.Empty(t, s.Threads())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestStore()
	th := s.CreateThread(mode.StructuralAnalysis)
	s.AppendMessage(domain.Message{ThreadID: th.ID, Role: domain.RoleUser, Content: "check this beam"})
	s.SetText("draft in progress")
	s.SetTemperature(1.2)

	snap := s.Snapshot()
	require.NotNil(t, snap)
	require.Len(t, snap.Threads, 1)
	require.NotNil(t, snap.ActiveThreadID)
	assert.Equal(t, th.ID, *snap.ActiveThreadID)
	assert.Equal(t, 1.2, snap.Settings.Temperature)

	restored := newTestStore()
	restored.Restore(snap)

	threads := restored.Threads()
	require.Len(t, threads, 1)
	assert.Equal(t, th.ID, threads[0].ID)
	assert.Equal(t, domain.Mode(mode.StructuralAnalysis), restored.ActiveMode())
	require.NotNil(t, restored.ActiveThreadID())
	assert.Equal(t, th.ID, *restored.ActiveThreadID())

	msgs := restored.Messages(th.ID)
	require.Len(t, msgs, 1)
	assert.Equal(t, "check this beam", msgs[0].Content)

	assert.Equal(t, 1.2, restored.Settings().Temperature)

	// Composer text is session-only and never restored.
	assert.Empty(t, restored.Composer().Text)
	assert.Equal(t, mode.Hint(mode.StructuralAnalysis), restored.Composer().Hint)
}

func TestRestoreWithDanglingActivePointer(t *testing.T) {
	s := newTestStore()
	missing := uuid.New()
	s.Restore(&domain.Snapshot{
		Threads:        []domain.Thread{{ID: uuid.New(), Mode: domain.ModeChat}},
		ActiveThreadID: &missing,
		Messages:       map[uuid.UUID][]domain.Message{},
		Settings:       domain.DefaultSettings(),
	})

	assert.Nil(t, s.ActiveThreadID())
	assert.Equal(t, domain.ModeChat, s.ActiveMode())
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := newTestStore()

	var mu sync.Mutex
	count := 0
	unsubscribe := s.Subscribe(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	s.CreateThread(domain.ModeChat)
	mu.Lock()
	assert.Equal(t, 1, count)
	mu.Unlock()

	unsubscribe()
	s.CreateThread(domain.ModeChat)
	mu.Lock()
	assert.Equal(t, 1, count)
	mu.Unlock()
}

func TestToggleRTLNotifiesDirection(t *testing.T) {
	s := newTestStore()

	var got []bool
	s.SetDirectionNotifier(func(rtl bool) { got = append(got, rtl) })

	require.True(t, s.Settings().RTL)
	s.ToggleRTL()
	s.ToggleRTL()

	assert.Equal(t, []bool{false, true}, got)
	assert.True(t, s.Settings().RTL)
}

func TestSetTemperatureClamped(t *testing.T) {
	s := newTestStore()

	s.SetTemperature(-1)
	assert.Equal(t, 0.0, s.Settings().Temperature)

	s.SetTemperature(5)
	assert.Equal(t, 2.0, s.Settings().Temperature)

	s.SetTemperature(0.9)
	assert.Equal(t, 0.9, s.Settings().Temperature)
}

func TestSettingsToggles(t *testing.T) {
	s := newTestStore()
	defaults := domain.DefaultSettings()

	s.ToggleHijri()
	assert.Equal(t, !defaults.Hijri, s.Settings().Hijri)

	s.ToggleVoice()
	assert.Equal(t, !defaults.VoiceEnabled, s.Settings().VoiceEnabled)

	s.ToggleAutoTranslate()
	assert.True(t, s.Settings().AutoTranslate)
}
