package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) CreateCard(ctx context.Context, c *models.Card) error {
	numbers, err := encodeInts(c.Numbers)
	if err != nil {
		return err
	}
	marked, err := encodeInts(c.Marked)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cards (id, player_id, game_id, numbers, marked)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query, c.ID, c.PlayerID, c.GameID, numbers, marked); err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (s *CardStore) GetCard(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id, player_id, game_id, numbers, marked
		FROM cards
		WHERE id = $1
	`

	c := &models.Card{}
	var rawNumbers, rawMarked []byte
	err := s.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.PlayerID,
		&c.GameID,
		&rawNumbers,
		&rawMarked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if c.Numbers, err = decodeInts(rawNumbers); err != nil {
		return nil, err
	}
	if c.Marked, err = decodeInts(rawMarked); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CardStore) ListCards(ctx context.Context, playerID string) ([]*models.Card, error) {
	query := `
		SELECT id, player_id, game_id, numbers, marked
		FROM cards
		WHERE player_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		var c models.Card
		var rawNumbers, rawMarked []byte
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.GameID, &rawNumbers, &rawMarked); err != nil {
			return nil, err
		}
		if c.Numbers, err = decodeInts(rawNumbers); err != nil {
			return nil, err
		}
		if c.Marked, err = decodeInts(rawMarked); err != nil {
			return nil, err
		}
		cards = append(cards, &c)
	}

	return cards, rows.Err()
}

func (s *CardStore) UpdateCardMarked(ctx context.Context, id string, marked []int) error {
	encoded, err := encodeInts(marked)
	if err != nil {
		return err
	}
	ct, err := s.db.Exec(ctx, `UPDATE cards SET marked = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update card marks: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("card %s not found for mark update", id)
	}
	return nil
}

func (s *CardStore) DeleteCard(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func (s *CardStore) ClearMarksForGame(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, `UPDATE cards SET marked = '[]' WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to clear marks for game %s: %w", gameID, err)
	}
	return nil
}
