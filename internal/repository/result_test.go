package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/repository"
	"github.com/stretchr/testify/require"
)

func newMatchResult(winner string, finishedAt time.Time) repository.MatchResult {
	return repository.MatchResult{
		ID:          uuid.New().String(),
		BoardLength: 8,
		BlackPlayer: "HUMAN",
		WhitePlayer: "AI:greedy",
		BlackDiscs:  40,
		WhiteDiscs:  24,
		Winner:      winner,
		FinishedAt:  finishedAt,
	}
}

func TestResultRepository_SaveIsIdempotent(t *testing.T) {
	repo := repository.NewResultRepository(newPostgresDB(t))
	ctx := context.Background()

	result := newMatchResult("black", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Save(ctx, result))

	second := result
	second.Winner = "white"
	require.NoError(t, repo.Save(ctx, second))

	results, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	found := results[0]
	require.Equal(t, result.ID, found.ID)
	require.Equal(t, "black", found.Winner)
	require.Equal(t, result.BlackPlayer, found.BlackPlayer)
	require.Equal(t, result.BlackDiscs, found.BlackDiscs)
	require.True(t, result.FinishedAt.Equal(found.FinishedAt))
}

func TestResultRepository_ListNewestFirst(t *testing.T) {
	repo := repository.NewResultRepository(newPostgresDB(t))
	ctx := context.Background()

	now := time.Now()
	oldest := newMatchResult("black", now.Add(-2*time.Hour))
	newest := newMatchResult("white", now)
	middle := newMatchResult("draw", now.Add(-time.Hour))

	for _, result := range []repository.MatchResult{oldest, newest, middle} {
		require.NoError(t, repo.Save(ctx, result))
	}

	results, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, []string{newest.ID, middle.ID, oldest.ID},
		[]string{results[0].ID, results[1].ID, results[2].ID})

	results, err = repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, newest.ID, results[0].ID)
}

func TestResultRepository_ListEmpty(t *testing.T) {
	repo := repository.NewResultRepository(newPostgresDB(t))

	results, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestResultRepository_Stats(t *testing.T) {
	repo := repository.NewResultRepository(newPostgresDB(t))
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"black": 0, "white": 0, "draw": 0}, stats)

	now := time.Now()
	for _, winner := range []string{"black", "black", "draw"} {
		require.NoError(t, repo.Save(ctx, newMatchResult(winner, now)))
	}

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"black": 2, "white": 0, "draw": 1}, stats)
}

func TestResultRepository_RejectsInvalidWinner(t *testing.T) {
	repo := repository.NewResultRepository(newPostgresDB(t))

	err := repo.Save(context.Background(), newMatchResult("nobody", time.Now()))
	require.Error(t, err)
}
