package ai

import "context"

// Message roles in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation history handed to a provider.
type Message struct {
	Role    string
	Content string
}

// Client generates a reply from ordered conversation history. The last
// entry is the message being answered; everything before it is context.
type Client interface {
	Complete(ctx context.Context, history []Message) (string, error)
	Close() error
}
