package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/muhandis-app/assistant-api/internal/api/middleware"
	"github.com/muhandis-app/assistant-api/internal/api/response"
	"github.com/muhandis-app/assistant-api/internal/assistant"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/mode"
	"github.com/muhandis-app/assistant-api/internal/security"
	"github.com/muhandis-app/assistant-api/internal/service"
)

// AssistantHandler exposes the per-user conversation state over HTTP
type AssistantHandler struct {
	assistantService *service.AssistantService
	validator        *security.RequestValidator
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *service.AssistantService, validator *security.RequestValidator) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService, validator: validator}
}

// store resolves the caller's conversation store or writes the error response.
func (h *AssistantHandler) store(w http.ResponseWriter, r *http.Request) (*assistant.Store, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return nil, false
	}

	store, err := h.assistantService.StoreFor(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to load conversation state")
		return nil, false
	}
	return store, true
}

func threadIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "threadID"))
	if err != nil {
		response.BadRequest(w, "invalid thread ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetState returns the full conversation state for the caller
func (h *AssistantHandler) GetState(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	response.OK(w, map[string]any{
		"threads":          store.Threads(),
		"active_thread_id": store.ActiveThreadID(),
		"active_mode":      store.ActiveMode(),
		"composer":         store.Composer(),
		"settings":         store.Settings(),
		"generating":       store.IsGenerating(),
	})
}

// DeleteState wipes the caller's persisted conversation state
func (h *AssistantHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.assistantService.DeleteState(r.Context(), userID); err != nil {
		response.InternalError(w, "failed to delete conversation state")
		return
	}
	response.NoContent(w)
}

// ListThreads returns the caller's threads, newest first
func (h *AssistantHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	response.OK(w, map[string]any{
		"threads":          store.Threads(),
		"active_thread_id": store.ActiveThreadID(),
	})
}

// CreateThread starts a new thread in the requested mode
func (h *AssistantHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Mode domain.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if input.Mode == "" {
		input.Mode = domain.ModeChat
	}
	if !input.Mode.IsCore() && !mode.IsService(input.Mode) {
		response.BadRequest(w, "unknown mode")
		return
	}

	thread := store.CreateThread(input.Mode)
	response.Created(w, thread)
}

// GetThread returns a single thread with its messages
func (h *AssistantHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	thread, found := store.Thread(id)
	if !found {
		response.NotFound(w, "thread not found")
		return
	}

	response.OK(w, map[string]any{
		"thread":   thread,
		"messages": store.Messages(id),
	})
}

// ActivateThread makes a thread the active one
func (h *AssistantHandler) ActivateThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	store.SetActiveThread(id)
	response.OK(w, map[string]any{"active_thread_id": store.ActiveThreadID()})
}

// RenameThread updates a thread's title
func (h *AssistantHandler) RenameThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	var input struct {
		Title string `json:"title" validate:"required,max=200"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	store.RenameThread(id, input.Title)
	response.NoContent(w)
}

// StarThread toggles the starred flag on a thread
func (h *AssistantHandler) StarThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	store.StarThread(id)
	response.NoContent(w)
}

// ArchiveThread toggles the archived flag on a thread
func (h *AssistantHandler) ArchiveThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	store.ArchiveThread(id)
	response.NoContent(w)
}

// DeleteThread removes a thread and its messages
func (h *AssistantHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	store.DeleteThread(id)
	response.NoContent(w)
}

// ListMessages returns the messages of a thread in chronological order
func (h *AssistantHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	id, ok := threadIDParam(w, r)
	if !ok {
		return
	}

	if _, found := store.Thread(id); !found {
		response.NotFound(w, "thread not found")
		return
	}

	response.OK(w, map[string]any{"messages": store.Messages(id)})
}

// SwitchMode changes the active conversation mode
func (h *AssistantHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Mode domain.Mode `json:"mode" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !input.Mode.IsCore() && !mode.IsService(input.Mode) {
		response.BadRequest(w, "unknown mode")
		return
	}

	thread := store.SwitchMode(input.Mode)
	response.OK(w, map[string]any{
		"thread":        thread,
		"composer_hint": store.Composer().Hint,
	})
}

// Send submits the user's message and returns both sides of the exchange
func (h *AssistantHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		Content     string              `json:"content" validate:"required"`
		Attachments []domain.Attachment `json:"attachments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.assistantService.Send(r.Context(), userID, input.Content, input.Attachments)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGenerationInProgress):
			response.Conflict(w, err.Error())
		case errors.Is(err, domain.ErrUnauthenticated):
			response.Unauthorized(w, err.Error())
		default:
			response.InternalError(w, err.Error())
		}
		return
	}

	response.OK(w, result)
}

// StopGeneration cancels the in-flight completion, if any
func (h *AssistantHandler) StopGeneration(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.StopGeneration()
	response.NoContent(w)
}

// GetComposer returns the current composer state
func (h *AssistantHandler) GetComposer(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	response.OK(w, store.Composer())
}

// SetComposerText replaces the composer draft text
func (h *AssistantHandler) SetComposerText(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	store.SetText(input.Text)
	response.OK(w, store.Composer())
}

// SeedPrompt pre-fills the composer with a suggested prompt
func (h *AssistantHandler) SeedPrompt(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	store.SeedPrompt(input.Text)
	response.OK(w, store.Composer())
}

// AttachFile adds an attachment to the composer
func (h *AssistantHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input domain.Attachment
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if input.Name == "" {
		response.BadRequest(w, "attachment name is required")
		return
	}

	store.AttachFile(input)
	response.OK(w, store.Composer())
}

// RemoveAttachment drops a named attachment from the composer
func (h *AssistantHandler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "missing attachment name")
		return
	}

	store.RemoveAttachment(name)
	response.OK(w, store.Composer())
}

// StartVoice begins a voice capture session
func (h *AssistantHandler) StartVoice(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.StartVoiceRecording()
	response.OK(w, store.Composer())
}

// StopVoice ends the voice capture session
func (h *AssistantHandler) StopVoice(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		DurationSec float64 `json:"duration_sec"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	store.StopVoiceRecording(input.DurationSec)
	response.OK(w, store.Composer())
}

// AppendTranscript appends recognized speech to the composer text
func (h *AssistantHandler) AppendTranscript(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	store.SetVoiceTranscript(input.Text)
	response.OK(w, store.Composer())
}

// SetLanguage switches the composer input language
func (h *AssistantHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Language string `json:"language" validate:"required,oneof=ar en"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Validate(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	store.SetLanguage(input.Language)
	response.OK(w, store.Composer())
}

// ToggleTranslate flips the composer's translate flag
func (h *AssistantHandler) ToggleTranslate(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ToggleTranslate()
	response.OK(w, store.Composer())
}

// ClearComposer resets the composer to its empty state
func (h *AssistantHandler) ClearComposer(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ClearComposer()
	response.OK(w, store.Composer())
}

// GetSettings returns the caller's assistant settings
func (h *AssistantHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	response.OK(w, store.Settings())
}

// ToggleRTL flips the right-to-left layout setting
func (h *AssistantHandler) ToggleRTL(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ToggleRTL()
	response.OK(w, store.Settings())
}

// ToggleHijri flips the Hijri calendar setting
func (h *AssistantHandler) ToggleHijri(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ToggleHijri()
	response.OK(w, store.Settings())
}

// ToggleVoice flips the voice input setting
func (h *AssistantHandler) ToggleVoice(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ToggleVoice()
	response.OK(w, store.Settings())
}

// ToggleAutoTranslate flips the automatic translation setting
func (h *AssistantHandler) ToggleAutoTranslate(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.ToggleAutoTranslate()
	response.OK(w, store.Settings())
}

// SetTemperature updates the completion temperature
func (h *AssistantHandler) SetTemperature(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var input struct {
		Temperature float64 `json:"temperature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	store.SetTemperature(input.Temperature)
	response.OK(w, store.Settings())
}
