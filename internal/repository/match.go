package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lk16/reversi/internal/game"
	"github.com/redis/go-redis/v9"
)

const (
	MatchKeyPrefix   = "match:"
	MatchTTL         = 24 * time.Hour
	FinishedMatchTTL = time.Hour
	maxUpdateRetries = 10
)

var (
	// ErrMatchNotFound is returned when a match does not exist or expired.
	ErrMatchNotFound = errors.New("match not found")

	// ErrConcurrentUpdate is returned when a match kept changing during an update.
	ErrConcurrentUpdate = errors.New("match was updated concurrently")
)

// MatchRecord is a match as stored in Redis.
type MatchRecord struct {
	ID   string        `json:"id"`
	Game game.Snapshot `json:"game"`

	// Failure is set when the match cannot continue.
	Failure string `json:"failure,omitempty"`

	// ResultSaved is set once the outcome of a finished match is stored in Postgres.
	ResultSaved bool `json:"result_saved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchRepository stores active matches in Redis, one JSON value per match.
type MatchRepository struct {
	redis *redis.Client
}

// NewMatchRepository creates a MatchRepository.
func NewMatchRepository(redis *redis.Client) *MatchRepository {
	return &MatchRepository{redis: redis}
}

func matchKey(id string) string {
	return MatchKeyPrefix + id
}

// Create stores a new match. It fails if a match with the same ID exists.
func (repo *MatchRepository) Create(ctx context.Context, record MatchRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling match: %w", err)
	}

	created, err := repo.redis.SetNX(ctx, matchKey(record.ID), jsonData, MatchTTL).Result()
	if err != nil {
		return fmt.Errorf("error storing match: %w", err)
	}

	if !created {
		return fmt.Errorf("match %s already exists", record.ID)
	}

	return nil
}

// Get loads a match.
func (repo *MatchRepository) Get(ctx context.Context, id string) (MatchRecord, error) {
	jsonData, err := repo.redis.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return MatchRecord{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		return MatchRecord{}, fmt.Errorf("error getting match: %w", err)
	}

	var record MatchRecord
	if err = json.Unmarshal(jsonData, &record); err != nil {
		return MatchRecord{}, fmt.Errorf("error unmarshaling match: %w", err)
	}

	return record, nil
}

// Update loads a match, calls update on it and stores the result. Concurrent updates of the same match
// are retried, so update can be called more than once. Nothing is stored if update returns an error.
func (repo *MatchRepository) Update(
	ctx context.Context,
	id string,
	update func(*MatchRecord) error,
) (MatchRecord, error) {
	key := matchKey(id)

	var updated MatchRecord

	txFunc := func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
			}
			return fmt.Errorf("error getting match: %w", err)
		}

		var record MatchRecord
		if err = json.Unmarshal(jsonData, &record); err != nil {
			return fmt.Errorf("error unmarshaling match: %w", err)
		}

		if err = update(&record); err != nil {
			return err
		}

		record.UpdatedAt = time.Now()

		jsonData, err = json.Marshal(record)
		if err != nil {
			return fmt.Errorf("error marshaling match: %w", err)
		}

		ttl := MatchTTL
		if record.ResultSaved {
			ttl = FinishedMatchTTL
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = record
		return nil
	}

	for range maxUpdateRetries {
		err := repo.redis.Watch(ctx, txFunc, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return MatchRecord{}, err
		}

		return updated, nil
	}

	return MatchRecord{}, fmt.Errorf("%w: %s", ErrConcurrentUpdate, id)
}

// Delete removes a match.
func (repo *MatchRepository) Delete(ctx context.Context, id string) error {
	deleted, err := repo.redis.Del(ctx, matchKey(id)).Result()
	if err != nil {
		return fmt.Errorf("error deleting match: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}

	return nil
}
