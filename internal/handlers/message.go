package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carebot-backend/internal/ai"
	"carebot-backend/internal/cache"
	"carebot-backend/internal/models"
	"carebot-backend/internal/repository"
)

// aiRequestTimeout bounds the blocking completion call per request.
const aiRequestTimeout = 30 * time.Second

type messageRepository interface {
	Append(ctx context.Context, chatID int64, content string, isBot bool) (*models.Message, error)
	ListByChat(ctx context.Context, chatID int64) ([]*models.Message, error)
}

type MessageHandler struct {
	chatRepo    chatRepository
	messageRepo messageRepository
	ai          ai.Client
	cache       *cache.MessageCache
	logger      *zap.Logger
}

func NewMessageHandler(chatRepo chatRepository, messageRepo messageRepository, aiClient ai.Client, msgCache *cache.MessageCache, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		ai:          aiClient,
		cache:       msgCache,
		logger:      logger,
	}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chat ID", r))
		return
	}

	if _, err := h.chatRepo.GetByID(r.Context(), chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to load chat", r))
		return
	}

	if cached, err := h.cache.Get(r.Context(), chatID); err != nil {
		h.logger.Warn("message cache read failed", zap.Error(err), zap.Int64("chat_id", chatID))
	} else if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	messages, err := h.messageRepo.ListByChat(r.Context(), chatID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to list messages", r))
		return
	}

	if err := h.cache.Replace(r.Context(), chatID, messages); err != nil {
		h.logger.Warn("message cache rebuild failed", zap.Error(err), zap.Int64("chat_id", chatID))
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid chat ID", r))
		return
	}

	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Content is required", r))
		return
	}

	if _, err := h.chatRepo.GetByID(r.Context(), chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to load chat", r))
		return
	}

	userMsg, err := h.messageRepo.Append(r.Context(), chatID, req.Content, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to store message", r))
		return
	}

	history, err := h.messageRepo.ListByChat(r.Context(), chatID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to load history", r))
		return
	}

	aiCtx, cancel := context.WithTimeout(r.Context(), aiRequestTimeout)
	defer cancel()

	reply, err := h.ai.Complete(aiCtx, toAIHistory(history))
	if err != nil {
		// The user's message stays persisted; only the reply is lost.
		h.logger.Error("AI completion failed", zap.Error(err), zap.Int64("chat_id", chatID))
		h.refreshCache(r.Context(), chatID, history)
		writeJSON(w, http.StatusBadGateway, errorResp("UPSTREAM_ERROR", "Failed to get AI response", r))
		return
	}

	botMsg, err := h.messageRepo.Append(r.Context(), chatID, reply, true)
	if err != nil {
		h.refreshCache(r.Context(), chatID, history)
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to store AI reply", r))
		return
	}

	h.refreshCache(r.Context(), chatID, append(history, botMsg))

	writeJSON(w, http.StatusOK, models.PostMessageResponse{
		UserMessage: userMsg,
		BotMessage:  botMsg,
	})
}

func (h *MessageHandler) refreshCache(ctx context.Context, chatID int64, messages []*models.Message) {
	if err := h.cache.Replace(ctx, chatID, messages); err != nil {
		h.logger.Warn("message cache update failed", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func toAIHistory(messages []*models.Message) []ai.Message {
	history := make([]ai.Message, len(messages))
	for i, m := range messages {
		role := ai.RoleUser
		if m.IsBot {
			role = ai.RoleAssistant
		}
		history[i] = ai.Message{Role: role, Content: m.Content}
	}
	return history
}
