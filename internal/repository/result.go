package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// MatchResult is the stored outcome of a finished match.
type MatchResult struct {
	ID          string    `db:"id"           json:"id"`
	BoardLength int       `db:"board_length" json:"board_length"`
	BlackPlayer string    `db:"black_player" json:"black_player"`
	WhitePlayer string    `db:"white_player" json:"white_player"`
	BlackDiscs  int       `db:"black_discs"  json:"black_discs"`
	WhiteDiscs  int       `db:"white_discs"  json:"white_discs"`
	Winner      string    `db:"winner"       json:"winner"`
	FinishedAt  time.Time `db:"finished_at"  json:"finished_at"`
}

// ResultRepository stores finished matches in Postgres.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a ResultRepository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save stores a result. Saving the same match twice keeps the first result.
func (repo *ResultRepository) Save(ctx context.Context, result MatchResult) error {
	query := `
		INSERT INTO match_results
			(id, board_length, black_player, white_player, black_discs, white_discs, winner, finished_at)
		VALUES
			(:id, :board_length, :black_player, :white_player, :black_discs, :white_discs, :winner, :finished_at)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := repo.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("error saving match result: %w", err)
	}

	return nil
}

// List returns the most recently finished matches, newest first.
func (repo *ResultRepository) List(ctx context.Context, limit int) ([]MatchResult, error) {
	query := `
		SELECT id, board_length, black_player, white_player, black_discs, white_discs, winner, finished_at
		FROM match_results
		ORDER BY finished_at DESC
		LIMIT $1
	`

	results := make([]MatchResult, 0)
	if err := repo.db.SelectContext(ctx, &results, query, limit); err != nil {
		return nil, fmt.Errorf("error listing match results: %w", err)
	}

	return results, nil
}

// Stats returns the number of finished matches per winner: "black", "white" or "draw".
func (repo *ResultRepository) Stats(ctx context.Context) (map[string]int, error) {
	query := `SELECT winner, COUNT(*) AS count FROM match_results GROUP BY winner`

	rows := []struct {
		Winner string `db:"winner"`
		Count  int    `db:"count"`
	}{}

	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error getting match stats: %w", err)
	}

	stats := map[string]int{"black": 0, "white": 0, "draw": 0}
	for _, row := range rows {
		stats[row.Winner] = row.Count
	}

	return stats, nil
}
