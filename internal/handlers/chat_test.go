package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"carebot-backend/internal/cache"
	"carebot-backend/internal/models"
)

func newChatHandler(chatRepo *stubChatRepo, messageRepo *stubMessageRepo) *ChatHandler {
	return NewChatHandler(chatRepo, messageRepo, cache.NewMessageCache(nil), zap.NewNop())
}

func TestChatHandler_CreateThenList_IncludesItOnce(t *testing.T) {
	chatRepo := &stubChatRepo{}
	h := newChatHandler(chatRepo, &stubMessageRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/chats", bytes.NewReader([]byte(`{"title":"Flu questions"}`)))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	var created models.Chat
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Title != "Flu questions" {
		t.Fatalf("unexpected title: %q", created.Title)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rr = httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var chats []models.ChatListItem
	if err := json.NewDecoder(rr.Body).Decode(&chats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	found := 0
	for _, c := range chats {
		if c.ID == created.ID {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected created chat to appear exactly once, appeared %d times", found)
	}
}

func TestChatHandler_Create_SeedsGreeting(t *testing.T) {
	messageRepo := &stubMessageRepo{}
	h := newChatHandler(&stubChatRepo{}, messageRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/chats", nil)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	if len(messageRepo.messages) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(messageRepo.messages))
	}
	greeting := messageRepo.messages[0]
	if !greeting.IsBot {
		t.Fatal("greeting message should be from the bot")
	}
	if greeting.Content != greetingMessage {
		t.Fatalf("unexpected greeting content: %q", greeting.Content)
	}
}

func TestChatHandler_Create_DefaultTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"empty object", `{}`},
		{"blank title", `{"title":"   "}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newChatHandler(&stubChatRepo{}, &stubMessageRepo{})

			var req *http.Request
			if tc.body == "" {
				req = httptest.NewRequest(http.MethodPost, "/api/chats", nil)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(tc.body))
			}
			rr := httptest.NewRecorder()
			h.Create(rr, req)

			if rr.Code != http.StatusCreated {
				t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
			}

			var created models.Chat
			if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if created.Title != defaultChatTitle {
				t.Fatalf("expected default title %q, got %q", defaultChatTitle, created.Title)
			}
		})
	}
}

func TestChatHandler_Create_InvalidBody(t *testing.T) {
	h := newChatHandler(&stubChatRepo{}, &stubMessageRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"title":`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if code := decodeErrorCode(t, rr); code != "VALIDATION_ERROR" {
		t.Fatalf("expected code VALIDATION_ERROR, got %q", code)
	}
}

func TestChatHandler_DeleteAll_EmptiesList(t *testing.T) {
	chatRepo := &stubChatRepo{}
	h := newChatHandler(chatRepo, &stubMessageRepo{})

	for _, title := range []string{"first", "second"} {
		req := httptest.NewRequest(http.MethodPost, "/api/chats", strings.NewReader(`{"title":"`+title+`"}`))
		h.Create(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/chats", nil)
	rr := httptest.NewRecorder()
	h.DeleteAll(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp models.ClearChatsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
	if !chatRepo.cleared {
		t.Fatal("expected repository delete to be executed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rr = httptest.NewRecorder()
	h.List(rr, req)

	var chats []models.ChatListItem
	if err := json.NewDecoder(rr.Body).Decode(&chats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(chats) != 0 {
		t.Fatalf("expected empty chat list after clear, got %d entries", len(chats))
	}

	// Clearing an already empty store still succeeds.
	rr = httptest.NewRecorder()
	h.DeleteAll(rr, httptest.NewRequest(http.MethodDelete, "/api/chats", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected repeated delete to return %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestChatHandler_List_StorageError(t *testing.T) {
	h := newChatHandler(&stubChatRepo{listErr: errors.New("connection refused")}, &stubMessageRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if code := decodeErrorCode(t, rr); code != "STORAGE_ERROR" {
		t.Fatalf("expected code STORAGE_ERROR, got %q", code)
	}
}
