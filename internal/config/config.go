package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/strategy"
)

// ErrInvalidBoardLength is reported when a board length is odd or outside the accepted range.
var ErrInvalidBoardLength = errors.New("invalid board length")

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:          getEnvMust("REVERSI_REDIS_URL"),
		PostgresURL:       getEnvMust("REVERSI_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("REVERSI_SERVER_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_SERVER_BASIC_AUTH_PASS"),
		Token:             getEnvMust("REVERSI_SERVER_TOKEN"),
		Prefork:           getEnvMustBool("REVERSI_SERVER_PREFORK"),
	}
}

// MatchConfig holds the settings of a new match.
type MatchConfig struct {
	BoardLength int
	Black       player.Kind
	White       player.Kind
	FirstToMove models.Color
	Strategy    string
}

// DefaultMatchConfig returns the settings used when nothing is configured: a human playing black
// against the greedy strategy on a board of length 8.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		BoardLength: models.DefaultBoardLength,
		Black:       player.Human,
		White:       player.Computer,
		FirstToMove: models.BLACK,
		Strategy:    strategy.GreedyName,
	}
}

// LoadMatchConfig loads match defaults from optional environment variables. Invalid values are fatal,
// except for the board length which falls back to the default.
func LoadMatchConfig() MatchConfig {
	cfg := DefaultMatchConfig()

	if value := os.Getenv("REVERSI_BOARD_LENGTH"); value != "" {
		length, err := strconv.Atoi(value)
		if err != nil {
			slog.Warn("Board length is not a number, using default", "value", value, "default", models.DefaultBoardLength)
			length = models.DefaultBoardLength
		}
		cfg.BoardLength = NormalizeBoardLength(length)
	}

	if value := os.Getenv("REVERSI_BLACK"); value != "" {
		cfg.Black = getKindMust("REVERSI_BLACK", value)
	}

	if value := os.Getenv("REVERSI_WHITE"); value != "" {
		cfg.White = getKindMust("REVERSI_WHITE", value)
	}

	if value := os.Getenv("REVERSI_FIRST_TO_MOVE"); value != "" {
		color, err := models.ParseColor(value)
		if err != nil {
			slog.Error("Cannot load environment variable", "key", "REVERSI_FIRST_TO_MOVE", "error", err)
			os.Exit(1)
		}
		cfg.FirstToMove = color
	}

	if value := os.Getenv("REVERSI_STRATEGY"); value != "" {
		cfg.Strategy = value
	}

	return cfg
}

// ValidateBoardLength checks that length is even and within the accepted range.
func ValidateBoardLength(length int) error {
	if length < models.MinBoardLength || length > models.MaxBoardLength || length%2 != 0 {
		return fmt.Errorf("%w: %d, must be even and between %d and %d",
			ErrInvalidBoardLength, length, models.MinBoardLength, models.MaxBoardLength)
	}
	return nil
}

// NormalizeBoardLength returns length if it is valid and the default length otherwise.
func NormalizeBoardLength(length int) int {
	if err := ValidateBoardLength(length); err != nil {
		slog.Warn("Using default board length", "error", err, "default", models.DefaultBoardLength)
		return models.DefaultBoardLength
	}
	return length
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getKindMust(key, value string) player.Kind {
	kind, err := player.ParseKind(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be \"HUMAN\" or \"AI\"", "key", key, "value", value)
		os.Exit(1)
	}
	return kind
}
