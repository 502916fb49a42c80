package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
)

const defaultResultLimit = 50

// ErrMatchFailed is returned when acting on a match that hit an inconsistent move application before.
var ErrMatchFailed = errors.New("match cannot continue")

// MatchStore stores active matches.
type MatchStore interface {
	Create(ctx context.Context, record repository.MatchRecord) error
	Get(ctx context.Context, id string) (repository.MatchRecord, error)
	Update(ctx context.Context, id string, update func(*repository.MatchRecord) error) (repository.MatchRecord, error)
	Delete(ctx context.Context, id string) error
}

// ResultStore stores results of finished matches.
type ResultStore interface {
	Save(ctx context.Context, result repository.MatchResult) error
	List(ctx context.Context, limit int) ([]repository.MatchResult, error)
	Stats(ctx context.Context) (map[string]int, error)
}

// MatchService runs matches on behalf of the API.
type MatchService struct {
	matches  MatchStore
	results  ResultStore
	lookup   player.StrategyLookup
	defaults config.MatchConfig
}

// NewMatchService creates a MatchService.
func NewMatchService(
	matches MatchStore,
	results ResultStore,
	lookup player.StrategyLookup,
	defaults config.MatchConfig,
) *MatchService {
	return &MatchService{
		matches:  matches,
		results:  results,
		lookup:   lookup,
		defaults: defaults,
	}
}

// matchConfig merges a request with the defaults. The request must be validated already.
func (s *MatchService) matchConfig(req CreateMatchRequest) (config.MatchConfig, error) {
	cfg := s.defaults

	if req.BoardLength != 0 {
		cfg.BoardLength = config.NormalizeBoardLength(req.BoardLength)
	}

	var err error

	if req.Black != "" {
		if cfg.Black, err = player.ParseKind(req.Black); err != nil {
			return cfg, err
		}
	}

	if req.White != "" {
		if cfg.White, err = player.ParseKind(req.White); err != nil {
			return cfg, err
		}
	}

	if req.FirstToMove != "" {
		if cfg.FirstToMove, err = models.ParseColor(req.FirstToMove); err != nil {
			return cfg, err
		}
	}

	if req.Strategy != "" {
		cfg.Strategy = req.Strategy
	}

	return cfg, nil
}

func (s *MatchService) newPlayer(color models.Color, kind player.Kind, strategyName string) (player.Player, error) {
	if kind == player.Human {
		return player.NewHuman(color), nil
	}

	strategy, err := s.lookup(strategyName)
	if err != nil {
		return player.Player{}, err
	}

	return player.NewComputer(color, strategy), nil
}

// Create starts a new match.
func (s *MatchService) Create(ctx context.Context, req CreateMatchRequest) (MatchView, error) {
	cfg, err := s.matchConfig(req)
	if err != nil {
		return MatchView{}, err
	}

	black, err := s.newPlayer(models.BLACK, cfg.Black, cfg.Strategy)
	if err != nil {
		return MatchView{}, err
	}

	white, err := s.newPlayer(models.WHITE, cfg.White, cfg.Strategy)
	if err != nil {
		return MatchView{}, err
	}

	first, second := black, white
	if cfg.FirstToMove == models.WHITE {
		first, second = white, black
	}

	g, err := game.NewStart(cfg.BoardLength, first, second)
	if err != nil {
		return MatchView{}, err
	}

	now := time.Now()
	record := repository.MatchRecord{
		ID:        uuid.New().String(),
		Game:      g.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.matches.Create(ctx, record); err != nil {
		return MatchView{}, err
	}

	slog.Info("match created", "id", record.ID, "length", cfg.BoardLength,
		"black", cfg.Black, "white", cfg.White, "first", cfg.FirstToMove)

	return newMatchView(record.ID, g, ""), nil
}

// Get returns the current state of a match.
func (s *MatchService) Get(ctx context.Context, id string) (MatchView, error) {
	record, err := s.matches.Get(ctx, id)
	if err != nil {
		return MatchView{}, err
	}

	g, err := game.Restore(record.Game, s.lookup)
	if err != nil {
		return MatchView{}, fmt.Errorf("failed to restore match %s: %w", id, err)
	}

	return newMatchView(record.ID, g, record.Failure), nil
}

// Delete abandons a match. Finished matches keep their stored result.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	if err := s.matches.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("match deleted", "id", id)
	return nil
}

// SelectMove stores the selection of the human player to move and runs one tick.
func (s *MatchService) SelectMove(ctx context.Context, id string, landing models.Position) (MatchView, error) {
	return s.update(ctx, id, func(g game.Game) (game.Game, error) {
		selected, err := g.Select(landing)
		if err != nil {
			return g, err
		}
		return selected.Tick()
	})
}

// Tick runs up to ticks transitions. It stops early when the game is over or waits for a human.
func (s *MatchService) Tick(ctx context.Context, id string, ticks int) (MatchView, error) {
	if ticks < 1 {
		ticks = 1
	}

	return s.update(ctx, id, func(g game.Game) (game.Game, error) {
		return g.Run(ticks)
	})
}

// update applies step to a stored match. A failed application is recorded on the match, all other
// errors leave the match unchanged.
func (s *MatchService) update(
	ctx context.Context,
	id string,
	step func(game.Game) (game.Game, error),
) (MatchView, error) {
	var (
		next    game.Game
		stepErr error
	)

	record, err := s.matches.Update(ctx, id, func(record *repository.MatchRecord) error {
		stepErr = nil

		if record.Failure != "" {
			return fmt.Errorf("%w: %s", ErrMatchFailed, record.Failure)
		}

		g, err := game.Restore(record.Game, s.lookup)
		if err != nil {
			return fmt.Errorf("failed to restore match %s: %w", id, err)
		}

		next, stepErr = step(g)
		if stepErr != nil {
			if errors.Is(stepErr, models.ErrInconsistentApplication) {
				slog.Error("match cannot continue", "id", id, "error", stepErr)
				record.Failure = stepErr.Error()
				return nil
			}
			return stepErr
		}

		if err = s.saveResult(ctx, record, next); err != nil {
			return err
		}

		record.Game = next.Snapshot()
		return nil
	})
	if err != nil {
		return MatchView{}, err
	}

	if stepErr != nil {
		return MatchView{}, fmt.Errorf("%w: %w", ErrMatchFailed, stepErr)
	}

	return newMatchView(record.ID, next, record.Failure), nil
}

// saveResult stores the outcome once the game is over.
func (s *MatchService) saveResult(ctx context.Context, record *repository.MatchRecord, g game.Game) error {
	outcome, ok := g.Outcome()
	if !ok || record.ResultSaved {
		return nil
	}

	winner := "draw"
	if outcome.Winner != nil {
		winner = outcome.Winner.String()
	}

	result := repository.MatchResult{
		ID:          record.ID,
		BoardLength: g.Board().Length(),
		BlackPlayer: playerName(g.Player(models.BLACK)),
		WhitePlayer: playerName(g.Player(models.WHITE)),
		BlackDiscs:  outcome.Score.Of(models.BLACK),
		WhiteDiscs:  outcome.Score.Of(models.WHITE),
		Winner:      winner,
		FinishedAt:  time.Now(),
	}

	if err := s.results.Save(ctx, result); err != nil {
		return err
	}

	slog.Info("match finished", "id", record.ID, "outcome", outcome.String())

	record.ResultSaved = true
	return nil
}

func playerName(p player.Player) string {
	if s := p.Strategy(); s != nil {
		return p.Kind().String() + ":" + s.Name()
	}
	return p.Kind().String()
}

// Results lists finished matches, newest first.
func (s *MatchService) Results(ctx context.Context, limit int) ([]repository.MatchResult, error) {
	if limit <= 0 {
		limit = defaultResultLimit
	}
	return s.results.List(ctx, limit)
}

// Stats counts finished matches per winner.
func (s *MatchService) Stats(ctx context.Context) (map[string]int, error) {
	return s.results.Stats(ctx)
}
