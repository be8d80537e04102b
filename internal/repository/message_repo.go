package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"carebot-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Append(ctx context.Context, chatID int64, content string, isBot bool) (*models.Message, error) {
	m := &models.Message{ChatID: chatID, Content: content, IsBot: isBot}

	query := `INSERT INTO messages (chat_id, content, is_bot) VALUES ($1, $2, $3)
		RETURNING id, timestamp`

	err := r.pool.QueryRow(ctx, query, chatID, content, isBot).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MessageRepo) ListByChat(ctx context.Context, chatID int64) ([]*models.Message, error) {
	query := `SELECT id, chat_id, content, is_bot, timestamp FROM messages
		WHERE chat_id = $1 ORDER BY timestamp ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Content, &m.IsBot, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
