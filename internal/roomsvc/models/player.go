package models

import "time"

type Player struct {
	ID        string    `json:"id"`      // UUID, host uses "host-" + room code
	GameID    string    `json:"game_id"` // FK to games(id)
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	JoinedAt  time.Time `json:"joined_at"`
}
