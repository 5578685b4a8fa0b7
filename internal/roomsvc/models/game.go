package models

import (
	"time"

	"github.com/bingohall/room-services/internal/bingo"
)

type Game struct {
	ID            string        `json:"id"`       // Short room code like "A3F8KQ"
	HostID        string        `json:"host_id"`  // Player id of the host ("host-" + code)
	HostName      string        `json:"host_name"`
	Status        bingo.Status  `json:"status"`         // waiting, playing, paused, finished
	PlayerLimit   int           `json:"player_limit"`
	WinPattern    bingo.Pattern `json:"win_pattern"`
	CalledNumbers []int         `json:"called_numbers"` // Append-only, no duplicates
	StagedNumber  *int          `json:"staged_number"`  // Previewed next call, nil when none
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
