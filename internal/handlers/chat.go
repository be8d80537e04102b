package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"carebot-backend/internal/cache"
	"carebot-backend/internal/models"
)

const defaultChatTitle = "New chat"

// greetingMessage is seeded as the first bot message of every new chat.
const greetingMessage = "Hello! I'm your AI Healthcare Bot. How can I assist you today?"

type chatRepository interface {
	Create(ctx context.Context, title string) (*models.Chat, error)
	GetByID(ctx context.Context, id int64) (*models.Chat, error)
	List(ctx context.Context) ([]*models.ChatListItem, error)
	DeleteAll(ctx context.Context) error
}

type ChatHandler struct {
	chatRepo    chatRepository
	messageRepo messageRepository
	cache       *cache.MessageCache
	logger      *zap.Logger
}

func NewChatHandler(chatRepo chatRepository, messageRepo messageRepository, msgCache *cache.MessageCache, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		cache:       msgCache,
		logger:      logger,
	}
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to list chats", r))
		return
	}

	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Body is optional; an absent title falls back to the default.
	var req models.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultChatTitle
	}

	chat, err := h.chatRepo.Create(r.Context(), title)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to create chat", r))
		return
	}

	greeting, err := h.messageRepo.Append(r.Context(), chat.ID, greetingMessage, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to create chat", r))
		return
	}

	if err := h.cache.Replace(r.Context(), chat.ID, []*models.Message{greeting}); err != nil {
		h.logger.Warn("failed to cache greeting message", zap.Error(err), zap.Int64("chat_id", chat.ID))
	}

	writeJSON(w, http.StatusCreated, chat)
}

func (h *ChatHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.chatRepo.DeleteAll(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to clear chats", r))
		return
	}

	if err := h.cache.Clear(r.Context()); err != nil {
		h.logger.Warn("failed to clear message cache", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, models.ClearChatsResponse{
		Status:  "success",
		Message: "All conversations cleared",
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// NotFound replies with the standard error envelope for unknown API routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Route not found", r))
}
