package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to Postgres and Redis.
func InitServices(ctx context.Context, cfg *config.ServerConfig) (*Services, error) {
	postgres, err := InitPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	redis, err := InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, errors.Join(err, postgres.Close())
	}

	return &Services{
		Postgres: postgres,
		Redis:    redis,
	}, nil
}

// Close closes all connections.
func (s *Services) Close() error {
	var errs []error

	if err := s.Postgres.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Postgres: %w", err))
	}

	if err := s.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Redis: %w", err))
	}

	return errors.Join(errs...)
}
