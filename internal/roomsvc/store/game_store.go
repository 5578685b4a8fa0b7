package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, g *models.Game) error {
	called, err := encodeInts(g.CalledNumbers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO games (id, host_id, host_name, status, player_limit, win_pattern, called_numbers, staged_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = s.db.QueryRow(ctx, query,
		g.ID, g.HostID, g.HostName, string(g.Status), g.PlayerLimit, string(g.WinPattern), called, g.StagedNumber,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (s *GameStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	query := `
		SELECT id, host_id, host_name, status, player_limit, win_pattern, called_numbers, staged_number, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	var rawCalled []byte
	err := s.db.QueryRow(ctx, query, id).Scan(
		&game.ID,
		&game.HostID,
		&game.HostName,
		&game.Status,
		&game.PlayerLimit,
		&game.WinPattern,
		&rawCalled,
		&game.StagedNumber,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.CalledNumbers, err = decodeInts(rawCalled); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameStore) UpdateStatus(ctx context.Context, id string, status bingo.Status) error {
	query := `UPDATE games SET status = $1, updated_at = now() WHERE id = $2`
	ct, err := s.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found for status update", id)
	}
	return nil
}

func (s *GameStore) UpdateWinPattern(ctx context.Context, id string, pattern bingo.Pattern) error {
	query := `UPDATE games SET win_pattern = $1, updated_at = now() WHERE id = $2`
	if _, err := s.db.Exec(ctx, query, string(pattern), id); err != nil {
		return fmt.Errorf("failed to update win pattern: %w", err)
	}
	return nil
}

func (s *GameStore) UpdateCalledNumbers(ctx context.Context, id string, numbers []int) error {
	called, err := encodeInts(numbers)
	if err != nil {
		return err
	}
	query := `UPDATE games SET called_numbers = $1, updated_at = now() WHERE id = $2`
	if _, err := s.db.Exec(ctx, query, called, id); err != nil {
		return fmt.Errorf("failed to update called numbers: %w", err)
	}
	return nil
}

func (s *GameStore) UpdateStagedNumber(ctx context.Context, id string, number *int) error {
	query := `UPDATE games SET staged_number = $1, updated_at = now() WHERE id = $2`
	if _, err := s.db.Exec(ctx, query, number, id); err != nil {
		return fmt.Errorf("failed to update staged number: %w", err)
	}
	return nil
}

// AppendCalledNumber appends number to the called history under the game's
// row lock so two racing calls can never produce duplicates or lost updates.
func (s *GameStore) AppendCalledNumber(ctx context.Context, id string, number int) ([]int, bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var rawCalled []byte
	err = tx.QueryRow(ctx, `SELECT called_numbers FROM games WHERE id = $1 FOR UPDATE`, id).Scan(&rawCalled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("game %s not found for call", id)
		}
		return nil, false, fmt.Errorf("lock game row: %w", err)
	}

	called, err := decodeInts(rawCalled)
	if err != nil {
		return nil, false, err
	}
	for _, n := range called {
		if n == number {
			return called, false, nil // already called, keep history as-is
		}
	}

	called = append(called, number)
	encoded, err := encodeInts(called)
	if err != nil {
		return nil, false, err
	}
	if _, err := tx.Exec(ctx, `UPDATE games SET called_numbers = $1, updated_at = now() WHERE id = $2`, encoded, id); err != nil {
		return nil, false, fmt.Errorf("update called numbers: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit tx: %w", err)
	}
	return called, true, nil
}
