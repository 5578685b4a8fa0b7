package service

import (
	"context"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

// Store contracts consumed by the room service. The pgx implementations live
// in the store package; tests substitute in-memory fakes. Get methods return
// nil with no error when the record is absent.

type GameStore interface {
	CreateGame(ctx context.Context, g *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	UpdateStatus(ctx context.Context, id string, status bingo.Status) error
	UpdateWinPattern(ctx context.Context, id string, pattern bingo.Pattern) error
	UpdateCalledNumbers(ctx context.Context, id string, numbers []int) error
	UpdateStagedNumber(ctx context.Context, id string, number *int) error

	// AppendCalledNumber commits a number under the per-game row lock.
	// A number already in the history is not appended again; the returned
	// history is authoritative either way.
	AppendCalledNumber(ctx context.Context, id string, number int) (history []int, appended bool, err error)
}

type PlayerStore interface {
	CreatePlayer(ctx context.Context, p *models.Player) error
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, gameID string) ([]*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

type CardStore interface {
	CreateCard(ctx context.Context, c *models.Card) error
	GetCard(ctx context.Context, id string) (*models.Card, error)
	ListCards(ctx context.Context, playerID string) ([]*models.Card, error)
	UpdateCardMarked(ctx context.Context, id string, marked []int) error
	DeleteCard(ctx context.Context, id string) error
	ClearMarksForGame(ctx context.Context, gameID string) error
}

type WinnerStore interface {
	CreateWinner(ctx context.Context, w *models.Winner) error
	ListWinners(ctx context.Context, gameID string) ([]*models.Winner, error)
	DeleteWinners(ctx context.Context, gameID string) error

	CreateMissedWinner(ctx context.Context, w *models.MissedWinner) error
	ListMissedWinners(ctx context.Context, gameID string) ([]*models.MissedWinner, error)
	DeleteMissedWinners(ctx context.Context, gameID string) error
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, gameID string) ([]*models.Message, error)
	DeleteMessages(ctx context.Context, gameID string) error
}

// EventPublisher fans room events out to the socket relay. Publishing is
// best-effort; a failed publish never fails the request.
type EventPublisher interface {
	PublishEvent(gameID string, eventType string, data interface{})
}
