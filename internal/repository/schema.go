package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	id           UUID PRIMARY KEY,
	board_length INTEGER NOT NULL CHECK (board_length BETWEEN 6 AND 10),
	black_player TEXT NOT NULL,
	white_player TEXT NOT NULL,
	black_discs  INTEGER NOT NULL CHECK (black_discs >= 0),
	white_discs  INTEGER NOT NULL CHECK (white_discs >= 0),
	winner       TEXT NOT NULL CHECK (winner IN ('black', 'white', 'draw')),
	finished_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS match_results_finished_at_idx ON match_results (finished_at DESC);
`

// Migrate creates the tables used by ResultRepository if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}
