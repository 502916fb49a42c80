package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/service"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/strategy"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
	startupTimeout      = 30 * time.Second
)

// SetupApp loads the configuration, connects to Redis and Postgres and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig, *services.Services, error) {
	cfg := config.LoadServerConfig()
	matchCfg := config.LoadMatchConfig()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	svcs, err := services.InitServices(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err = repository.Migrate(ctx, svcs.Postgres); err != nil {
		return nil, nil, nil, errors.Join(fmt.Errorf("failed to migrate database: %w", err), svcs.Close())
	}

	registry := strategy.NewDefaultRegistry()
	if _, err = registry.Lookup(matchCfg.Strategy); err != nil {
		return nil, nil, nil, errors.Join(fmt.Errorf("invalid default strategy: %w", err), svcs.Close())
	}

	matches := service.NewMatchService(
		repository.NewMatchRepository(svcs.Redis),
		repository.NewResultRepository(svcs.Postgres),
		registry.Lookup,
		matchCfg,
	)

	return BuildApp(cfg, matches), cfg, svcs, nil
}

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, matches *service.MatchService) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	app.Use(middleware.Recover())

	// Make the match service and config available to handlers
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("matches", matches)
		c.Locals("config", cfg)
		return c.Next()
	})

	app.Use(middleware.Logging())

	routes.SetupRoutes(app)

	return app
}
