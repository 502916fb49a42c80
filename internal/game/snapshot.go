package game

import (
	"fmt"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
)

// Snapshot is the serializable form of a Game.
type Snapshot struct {
	Board   models.Board    `json:"board"`
	Current player.Snapshot `json:"current"`
	Other   player.Snapshot `json:"other"`
	State   State           `json:"state"`
}

// Snapshot returns the serializable form of g.
func (g Game) Snapshot() Snapshot {
	return Snapshot{
		Board:   g.board,
		Current: g.current.Snapshot(),
		Other:   g.other.Snapshot(),
		State:   g.state,
	}
}

// Restore creates a Game from a snapshot. Legal moves are taken from the snapshot as is.
func Restore(snapshot Snapshot, lookup player.StrategyLookup) (Game, error) {
	current, err := player.Restore(snapshot.Current, lookup)
	if err != nil {
		return Game{}, fmt.Errorf("failed to restore current player: %w", err)
	}

	other, err := player.Restore(snapshot.Other, lookup)
	if err != nil {
		return Game{}, fmt.Errorf("failed to restore other player: %w", err)
	}

	if current.Color() == other.Color() {
		return Game{}, ErrPlayerColors
	}

	if snapshot.State < Active || snapshot.State > Terminal {
		return Game{}, fmt.Errorf("invalid game state: %d", snapshot.State)
	}

	return Game{
		board:   snapshot.Board,
		current: current,
		other:   other,
		state:   snapshot.State,
	}, nil
}
