package chatbot

import (
	"context"
	"fmt"

	"disaster-response/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the chat log store.
type RepositoryInterface interface {
	Log(ctx context.Context, msg *models.ChatMessage) error
	History(ctx context.Context, userID string, limit int) ([]*models.ChatMessage, error)
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new chat log repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Log inserts one exchange into the chat log.
func (r *Repository) Log(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_logs (user_id, message, response)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, msg.UserID, msg.Message, msg.Response).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.LogChat: %w", err)
	}
	return nil
}

// History retrieves the user's most recent exchanges, newest first.
func (r *Repository) History(ctx context.Context, userID string, limit int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, user_id, message, response, created_at
		FROM chat_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("repository.ChatHistory.Query: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Message, &msg.Response, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository.ChatHistory.Scan: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ChatHistory.Rows: %w", err)
	}
	return messages, nil
}
