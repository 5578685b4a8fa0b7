package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Games own players and cards through cascade deletes; winner, missed-winner
// and chat rows go with the game as well.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id             varchar PRIMARY KEY,
		host_id        varchar NOT NULL,
		host_name      text NOT NULL,
		status         varchar NOT NULL DEFAULT 'waiting',
		player_limit   integer NOT NULL,
		win_pattern    varchar NOT NULL DEFAULT 'line',
		called_numbers jsonb NOT NULL DEFAULT '[]',
		staged_number  integer,
		created_at     timestamptz NOT NULL DEFAULT now(),
		updated_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id         varchar PRIMARY KEY,
		game_id    varchar NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		name       text NOT NULL,
		card_count integer NOT NULL DEFAULT 1,
		joined_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id        varchar PRIMARY KEY,
		player_id varchar NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		game_id   varchar NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		numbers   jsonb NOT NULL,
		marked    jsonb NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS winners (
		id        serial PRIMARY KEY,
		game_id   varchar NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		player_id varchar NOT NULL,
		name      text NOT NULL,
		pattern   varchar NOT NULL,
		won_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS missed_winners (
		id        serial PRIMARY KEY,
		game_id   varchar NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		player_id varchar NOT NULL,
		name      text NOT NULL,
		pattern   varchar NOT NULL,
		reason    text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         varchar PRIMARY KEY,
		game_id    varchar NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		sender     text NOT NULL,
		text       text NOT NULL,
		is_system  boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_game ON players(game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_player ON cards(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_winners_game ON winners(game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_game ON messages(game_id)`,
}

// EnsureSchema creates the tables on startup when they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
