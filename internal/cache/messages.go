package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"carebot-backend/internal/models"
)

const messagesTTL = 24 * time.Hour

// MessageCache keeps the rendered message list of a chat in Redis. A nil
// Redis client disables every operation; the database stays the source
// of truth.
type MessageCache struct {
	rdb *redis.Client
}

func NewMessageCache(rdb *redis.Client) *MessageCache {
	return &MessageCache{rdb: rdb}
}

func (c *MessageCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func messagesKey(chatID int64) string {
	return fmt.Sprintf("chat:%d:messages", chatID)
}

// Get returns the cached message list for a chat. A miss (or disabled
// cache) returns nil without error.
func (c *MessageCache) Get(ctx context.Context, chatID int64) ([]*models.Message, error) {
	if !c.Enabled() {
		return nil, nil
	}

	vals, err := c.rdb.LRange(ctx, messagesKey(chatID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached messages: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	messages := make([]*models.Message, 0, len(vals))
	for _, v := range vals {
		m := &models.Message{}
		if err := json.Unmarshal([]byte(v), m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// Replace rebuilds a chat's cached list from authoritative rows.
func (c *MessageCache) Replace(ctx context.Context, chatID int64, messages []*models.Message) error {
	if !c.Enabled() {
		return nil
	}

	key := messagesKey(chatID)

	pipe := c.rdb.Pipeline()
	pipe.Del(ctx, key)
	for _, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, messagesTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache messages: %w", err)
	}
	return nil
}

// Clear drops every chat's cached list. Used by the bulk delete.
func (c *MessageCache) Clear(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, "chat:*:messages", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
