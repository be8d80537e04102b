package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebot-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Create(ctx context.Context, title string) (*models.Chat, error) {
	c := &models.Chat{Title: title}

	query := `INSERT INTO chats (title) VALUES ($1) RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, title).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChatRepo) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	c := &models.Chat{}

	query := `SELECT id, title, created_at FROM chats WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns every chat in creation order, with per-chat message stats.
func (r *ChatRepo) List(ctx context.Context) ([]*models.ChatListItem, error) {
	query := `SELECT c.id, c.title, c.created_at, COUNT(m.id), MAX(m.timestamp)
		FROM chats c
		LEFT JOIN messages m ON m.chat_id = c.id
		GROUP BY c.id, c.title, c.created_at
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []*models.ChatListItem{}
	for rows.Next() {
		c := &models.ChatListItem{}
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.MessageCount, &c.LastMessageAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}

// DeleteAll truncates both tables in one statement. Idempotent.
func (r *ChatRepo) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE messages, chats")
	return err
}
