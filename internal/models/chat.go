package models

import "time"

// Chat is a conversation session grouping an ordered sequence of messages.
type Chat struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatListItem is a chat row decorated with message stats for list views.
type ChatListItem struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	CreatedAt     time.Time  `json:"created_at"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

// CreateChatRequest is the payload for creating a chat. Title is optional.
type CreateChatRequest struct {
	Title string `json:"title"`
}

// ClearChatsResponse confirms a bulk delete of all chats.
type ClearChatsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
