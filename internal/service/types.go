package service

import (
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
)

// CreateMatchRequest holds the settings of a new match. Empty fields use the configured defaults.
type CreateMatchRequest struct {
	BoardLength int    `json:"board_length"`
	Black       string `json:"black"         validate:"omitempty,oneof=HUMAN AI"`
	White       string `json:"white"         validate:"omitempty,oneof=HUMAN AI"`
	FirstToMove string `json:"first_to_move" validate:"omitempty,oneof=black white BLACK WHITE"`
	Strategy    string `json:"strategy"      validate:"omitempty,oneof=greedy random"`
}

// SelectMoveRequest holds the landing square picked by a human.
type SelectMoveRequest struct {
	X *int `json:"x" validate:"required,min=0"`
	Z *int `json:"z" validate:"required,min=0"`
}

// TickRequest holds the maximum number of ticks to run.
type TickRequest struct {
	Ticks int `json:"ticks" validate:"omitempty,min=1,max=128"`
}

// PlayerView describes one player of a match.
type PlayerView struct {
	Color    models.Color `json:"color"`
	Kind     player.Kind  `json:"kind"`
	Strategy string       `json:"strategy,omitempty"`
	Passed   bool         `json:"passed"`
}

// MatchView is what clients see of a match.
type MatchView struct {
	ID       string            `json:"id"`
	State    string            `json:"state"`
	Board    models.Board      `json:"board"`
	Current  models.Color      `json:"current"`
	Landings []models.Position `json:"landings"`
	Players  []PlayerView      `json:"players"`
	Outcome  *game.Outcome     `json:"outcome,omitempty"`
	Failure  string            `json:"failure,omitempty"`
}

func newPlayerView(p player.Player) PlayerView {
	view := PlayerView{
		Color:  p.Color(),
		Kind:   p.Kind(),
		Passed: p.HasPassed(),
	}

	if s := p.Strategy(); s != nil {
		view.Strategy = s.Name()
	}

	return view
}

func newMatchView(id string, g game.Game, failure string) MatchView {
	view := MatchView{
		ID:       id,
		State:    g.State().String(),
		Board:    g.Board(),
		Current:  g.Current().Color(),
		Landings: models.Landings(g.Current().LegalMoves()),
		Players: []PlayerView{
			newPlayerView(g.Player(models.BLACK)),
			newPlayerView(g.Player(models.WHITE)),
		},
		Failure: failure,
	}

	if outcome, ok := g.Outcome(); ok {
		view.Outcome = &outcome
		view.Landings = []models.Position{}
	}

	return view
}
