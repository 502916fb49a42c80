package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lk16/reversi/internal/models"
)

// Kind tells who picks the moves of a player.
type Kind int

const (
	Human Kind = iota
	Computer
)

// ParseKind parses "HUMAN" or "AI", case insensitive. "COMPUTER" is accepted as well.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "HUMAN":
		return Human, nil
	case "AI", "COMPUTER":
		return Computer, nil
	default:
		return Human, fmt.Errorf("invalid player kind: %q", s)
	}
}

// String returns "HUMAN" or "AI".
func (k Kind) String() string {
	if k == Computer {
		return "AI"
	}
	return "HUMAN"
}

// Strategy chooses a move for a computer player.
type Strategy interface {
	// Name identifies the strategy, so a stored game can find it again.
	Name() string

	// ChooseMove returns one element of moves. Moves is never empty.
	ChooseMove(board models.Board, moves []models.Move) (models.Move, error)
}

var (
	// ErrNotHuman is returned when selecting a move for a computer player.
	ErrNotHuman = errors.New("player is not human")

	// ErrNoStrategy is returned when a computer player has no strategy.
	ErrNoStrategy = errors.New("computer player has no strategy")
)

// Player is the state of one side in a game. It is a value: every update returns a new Player.
type Player struct {
	color    models.Color
	kind     Kind
	strategy Strategy

	// moves is the legal move set from the last refresh
	moves []models.Move

	// passed is set when the last turn of this player was a forced pass
	passed bool

	// selection is the landing square picked by a human, if any
	selection *models.Position
}

// NewHuman creates a human player without legal moves.
func NewHuman(color models.Color) Player {
	return Player{color: color, kind: Human}
}

// NewComputer creates a computer player that uses strategy to choose moves.
func NewComputer(color models.Color, strategy Strategy) Player {
	return Player{color: color, kind: Computer, strategy: strategy}
}

// Color returns the color of the player.
func (p Player) Color() models.Color {
	return p.color
}

// Kind returns whether the player is human or computer controlled.
func (p Player) Kind() Kind {
	return p.kind
}

// Strategy returns the strategy of a computer player, or nil.
func (p Player) Strategy() Strategy {
	return p.strategy
}

// LegalMoves returns a copy of the legal move set.
func (p Player) LegalMoves() []models.Move {
	return append([]models.Move(nil), p.moves...)
}

// Selection returns the pending selection of a human player.
func (p Player) Selection() (models.Position, bool) {
	if p.selection == nil {
		return models.Position{}, false
	}
	return *p.selection, true
}

// HasLegalMove checks if the legal move set is non-empty.
func (p Player) HasLegalMove() bool {
	return len(p.moves) > 0
}

// HasPassed checks if the previous turn of this player was a forced pass.
func (p Player) HasPassed() bool {
	return p.passed
}

// Refresh recomputes the legal moves against board. It clears the passed flag and any pending selection.
func (p Player) Refresh(board models.Board) Player {
	p.moves = models.LegalMoves(board, p.color)
	p.passed = false
	p.selection = nil
	return p
}

// WithPass returns the player marked as passed.
func (p Player) WithPass() Player {
	p.passed = true
	return p
}

// WithSelection stores the landing square picked by a human. The square must be the landing of a
// legal move.
func (p Player) WithSelection(landing models.Position) (Player, error) {
	if p.kind != Human {
		return p, ErrNotHuman
	}

	if len(models.MovesAt(p.moves, landing)) == 0 {
		return p, fmt.Errorf("%w: %s cannot play %s", models.ErrIllegalMove, p.color, landing)
	}

	p.selection = &landing
	return p, nil
}

// NextMove returns the moves to play this turn: every legal move ending on the chosen landing square.
// It returns no moves and no error while a human has not selected anything yet.
func (p Player) NextMove(board models.Board) ([]models.Move, error) {
	switch p.kind {
	case Human:
		if p.selection == nil {
			return nil, nil
		}
		return p.movesAt(*p.selection)
	case Computer:
		if p.strategy == nil {
			return nil, ErrNoStrategy
		}

		if len(p.moves) == 0 {
			return nil, nil
		}

		move, err := p.strategy.ChooseMove(board, p.LegalMoves())
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", p.strategy.Name(), err)
		}

		if !models.ContainsMove(p.moves, move) {
			return nil, fmt.Errorf("%w: strategy %s chose %s", models.ErrIllegalMove, p.strategy.Name(), move)
		}

		return p.movesAt(move.Landing)
	default:
		return nil, fmt.Errorf("unknown player kind %d", p.kind)
	}
}

func (p Player) movesAt(landing models.Position) ([]models.Move, error) {
	moves := models.MovesAt(p.moves, landing)
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: %s cannot play %s", models.ErrIllegalMove, p.color, landing)
	}
	return moves, nil
}
