package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type MessageStore struct {
	db *pgxpool.Pool
}

func NewMessageStore(db *pgxpool.Pool) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) CreateMessage(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (id, game_id, sender, text, is_system)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := s.db.QueryRow(ctx, query, m.ID, m.GameID, m.Sender, m.Text, m.IsSystem).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (s *MessageStore) ListMessages(ctx context.Context, gameID string) ([]*models.Message, error) {
	query := `
		SELECT id, game_id, sender, text, is_system, created_at
		FROM messages
		WHERE game_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.GameID, &m.Sender, &m.Text, &m.IsSystem, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

func (s *MessageStore) DeleteMessages(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM messages WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
