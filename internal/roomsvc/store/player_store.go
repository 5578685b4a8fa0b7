package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (id, game_id, name, card_count)
		VALUES ($1, $2, $3, $4)
		RETURNING joined_at
	`
	err := s.db.QueryRow(ctx, query, p.ID, p.GameID, p.Name, p.CardCount).Scan(&p.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, game_id, name, card_count, joined_at
		FROM players
		WHERE id = $1
	`

	p := &models.Player{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.GameID,
		&p.Name,
		&p.CardCount,
		&p.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Player not found
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (s *PlayerStore) ListPlayers(ctx context.Context, gameID string) ([]*models.Player, error) {
	query := `
		SELECT id, game_id, name, card_count, joined_at
		FROM players
		WHERE game_id = $1
		ORDER BY joined_at
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var p models.Player
		err := rows.Scan(
			&p.ID,
			&p.GameID,
			&p.Name,
			&p.CardCount,
			&p.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &p)
	}

	return players, rows.Err()
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
