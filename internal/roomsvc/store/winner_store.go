package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type WinnerStore struct {
	db *pgxpool.Pool
}

func NewWinnerStore(db *pgxpool.Pool) *WinnerStore {
	return &WinnerStore{db: db}
}

func (s *WinnerStore) CreateWinner(ctx context.Context, w *models.Winner) error {
	query := `
		INSERT INTO winners (game_id, player_id, name, pattern)
		VALUES ($1, $2, $3, $4)
		RETURNING id, won_at
	`
	err := s.db.QueryRow(ctx, query, w.GameID, w.PlayerID, w.Name, string(w.Pattern)).Scan(&w.ID, &w.WonAt)
	if err != nil {
		return fmt.Errorf("failed to create winner: %w", err)
	}
	return nil
}

func (s *WinnerStore) ListWinners(ctx context.Context, gameID string) ([]*models.Winner, error) {
	query := `
		SELECT id, game_id, player_id, name, pattern, won_at
		FROM winners
		WHERE game_id = $1
		ORDER BY won_at
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	defer rows.Close()

	var winners []*models.Winner
	for rows.Next() {
		var w models.Winner
		if err := rows.Scan(&w.ID, &w.GameID, &w.PlayerID, &w.Name, &w.Pattern, &w.WonAt); err != nil {
			return nil, err
		}
		winners = append(winners, &w)
	}

	return winners, rows.Err()
}

func (s *WinnerStore) DeleteWinners(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM winners WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to delete winners: %w", err)
	}
	return nil
}

func (s *WinnerStore) CreateMissedWinner(ctx context.Context, w *models.MissedWinner) error {
	query := `
		INSERT INTO missed_winners (game_id, player_id, name, pattern, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRow(ctx, query, w.GameID, w.PlayerID, w.Name, string(w.Pattern), w.Reason).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to create missed winner: %w", err)
	}
	return nil
}

func (s *WinnerStore) ListMissedWinners(ctx context.Context, gameID string) ([]*models.MissedWinner, error) {
	query := `
		SELECT id, game_id, player_id, name, pattern, reason
		FROM missed_winners
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list missed winners: %w", err)
	}
	defer rows.Close()

	var missed []*models.MissedWinner
	for rows.Next() {
		var w models.MissedWinner
		if err := rows.Scan(&w.ID, &w.GameID, &w.PlayerID, &w.Name, &w.Pattern, &w.Reason); err != nil {
			return nil, err
		}
		missed = append(missed, &w)
	}

	return missed, rows.Err()
}

func (s *WinnerStore) DeleteMissedWinners(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM missed_winners WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to delete missed winners: %w", err)
	}
	return nil
}
