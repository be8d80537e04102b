package models

import "time"

// Message is one turn in a chat, authored by either the user or the bot.
type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// PostMessageRequest is the payload for posting a user message to a chat.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// PostMessageResponse pairs the stored user message with the bot reply.
type PostMessageResponse struct {
	UserMessage *Message `json:"user_message"`
	BotMessage  *Message `json:"bot_message"`
}
