package models

type Card struct {
	ID       string `json:"id"`        // UUID
	PlayerID string `json:"player_id"` // FK to players(id)
	GameID   string `json:"game_id"`   // FK to games(id)
	Numbers  []int  `json:"numbers"`   // 25 numbers, column-major (index = col*5 + row)
	Marked   []int  `json:"marked"`    // Marked flat indices 0-24, center 12 implicit
}
