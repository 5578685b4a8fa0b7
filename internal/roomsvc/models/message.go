package models

import "time"

type Message struct {
	ID        string    `json:"id"` // UUID
	GameID    string    `json:"game_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
}
