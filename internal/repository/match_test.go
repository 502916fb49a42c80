package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
	"github.com/stretchr/testify/require"
)

func newMatchRecord(t *testing.T) repository.MatchRecord {
	t.Helper()

	g, err := game.NewStart(8, player.NewHuman(models.BLACK), player.NewHuman(models.WHITE))
	require.NoError(t, err)

	now := time.Now()
	return repository.MatchRecord{
		ID:        uuid.New().String(),
		Game:      g.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMatchRepository_CreateGetUpdate(t *testing.T) {
	client := newRedisClient(t)
	repo := repository.NewMatchRepository(client)
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	ttl, err := client.TTL(ctx, repository.MatchKeyPrefix+record.ID).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, repository.FinishedMatchTTL)

	found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, record.ID, found.ID)
	require.True(t, record.Game.Board.Equal(found.Game.Board))
	require.Equal(t, record.Game.Current.Moves, found.Game.Current.Moves)
	require.Equal(t, game.Active, found.Game.State)
	require.WithinDuration(t, record.CreatedAt, found.CreatedAt, time.Millisecond)

	updated, err := repo.Update(ctx, record.ID, func(r *repository.MatchRecord) error {
		g, err := game.Restore(r.Game, nil)
		if err != nil {
			return err
		}

		if g, err = g.Select(models.Position{X: 2, Z: 4}); err != nil {
			return err
		}

		if g, err = g.Tick(); err != nil {
			return err
		}

		r.Game = g.Snapshot()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, models.WHITE, updated.Game.Current.Color)
	require.False(t, updated.UpdatedAt.Before(record.UpdatedAt))

	found, err = repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, models.Score{Black: 4, White: 1}, found.Game.Board.Score())
	require.Equal(t, models.WHITE, found.Game.Current.Color)
}

func TestMatchRepository_NotFound(t *testing.T) {
	repo := repository.NewMatchRepository(newRedisClient(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrMatchNotFound)

	_, err = repo.Update(ctx, "missing", func(*repository.MatchRecord) error {
		t.Fatal("update called for missing match")
		return nil
	})
	require.ErrorIs(t, err, repository.ErrMatchNotFound)

	err = repo.Delete(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestMatchRepository_DuplicateCreate(t *testing.T) {
	repo := repository.NewMatchRepository(newRedisClient(t))
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	duplicate := record
	duplicate.Failure = "overwritten"

	err := repo.Create(ctx, duplicate)
	require.ErrorContains(t, err, "already exists")

	found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Empty(t, found.Failure)
}

func TestMatchRepository_UpdateErrorStoresNothing(t *testing.T) {
	repo := repository.NewMatchRepository(newRedisClient(t))
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	updateErr := errors.New("rejected")
	_, err := repo.Update(ctx, record.ID, func(r *repository.MatchRecord) error {
		r.Failure = "changed"
		return updateErr
	})
	require.ErrorIs(t, err, updateErr)

	found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Empty(t, found.Failure)
}

func TestMatchRepository_FinishedMatchExpiresSooner(t *testing.T) {
	client := newRedisClient(t)
	repo := repository.NewMatchRepository(client)
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	_, err := repo.Update(ctx, record.ID, func(r *repository.MatchRecord) error {
		r.ResultSaved = true
		return nil
	})
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, repository.MatchKeyPrefix+record.ID).Result()
	require.NoError(t, err)
	require.Positive(t, ttl)
	require.LessOrEqual(t, ttl, repository.FinishedMatchTTL)
}

func TestMatchRepository_Delete(t *testing.T) {
	repo := repository.NewMatchRepository(newRedisClient(t))
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))
	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.Get(ctx, record.ID)
	require.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestMatchRepository_ConcurrentUpdates(t *testing.T) {
	repo := repository.NewMatchRepository(newRedisClient(t))
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	const workers = 8

	var (
		wg        sync.WaitGroup
		mutex     sync.Mutex
		succeeded int
		failures  []error
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.Update(ctx, record.ID, func(r *repository.MatchRecord) error {
				r.Failure += "x"
				return nil
			})

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded++
		}()
	}

	wg.Wait()

	for _, err := range failures {
		require.ErrorIs(t, err, repository.ErrConcurrentUpdate)
	}

	// Every successful update is stored, none is lost
	found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, found.Failure, succeeded)
	require.Positive(t, succeeded)
}

func TestMatchRepository_UpdateGivesUpAfterRetries(t *testing.T) {
	client := newRedisClient(t)
	repo := repository.NewMatchRepository(client)
	ctx := context.Background()

	record := newMatchRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	key := repository.MatchKeyPrefix + record.ID

	jsonData, err := client.Get(ctx, key).Bytes()
	require.NoError(t, err)

	calls := 0
	_, err = repo.Update(ctx, record.ID, func(r *repository.MatchRecord) error {
		calls++

		// Write the watched key from another connection, so the transaction always aborts
		if err := client.Set(ctx, key, jsonData, repository.MatchTTL).Err(); err != nil {
			return err
		}

		r.Failure = "never stored"
		return nil
	})
	require.ErrorIs(t, err, repository.ErrConcurrentUpdate)
	require.Equal(t, 10, calls)

	found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Empty(t, found.Failure)
}
