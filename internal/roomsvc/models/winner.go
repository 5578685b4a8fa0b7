package models

import (
	"time"

	"github.com/bingohall/room-services/internal/bingo"
)

type Winner struct {
	ID       int64         `json:"id"` // Primary key (serial)
	GameID   string        `json:"game_id"`
	PlayerID string        `json:"player_id"`
	Name     string        `json:"name"`
	Pattern  bingo.Pattern `json:"pattern"`
	WonAt    time.Time     `json:"won_at"`
}

// MissedWinner is recorded by the exhaustion auto-scan: a card that satisfied
// the win pattern but whose owner never claimed before the pool ran out.
type MissedWinner struct {
	ID       int64         `json:"id"`
	GameID   string        `json:"game_id"`
	PlayerID string        `json:"player_id"`
	Name     string        `json:"name"`
	Pattern  bingo.Pattern `json:"pattern"`
	Reason   string        `json:"reason"`
}
