package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
)

// State is the result of the last transition of a game.
type State int

const (
	// Active means normal play: the last tick applied a move, or nothing happened yet.
	Active State = iota

	// ForcedPass means the last tick passed for a player without legal moves.
	ForcedPass

	// Terminal means both players passed. No further transitions happen.
	Terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case ForcedPass:
		return "forced_pass"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrPlayerColors is returned when both players have the same color.
var ErrPlayerColors = errors.New("players must have different colors")

// Outcome is the final result of a game.
type Outcome struct {
	Score models.Score `json:"score"`

	// Winner is the winning color, nil on a draw.
	Winner *models.Color `json:"winner"`
}

// IsDraw checks if the game ended in a draw.
func (o Outcome) IsDraw() bool {
	return o.Winner == nil
}

// String returns a human readable description like "black wins 40 : 24".
func (o Outcome) String() string {
	if o.Winner == nil {
		return fmt.Sprintf("draw %d : %d", o.Score.Black, o.Score.White)
	}
	return fmt.Sprintf("%s wins %d : %d", *o.Winner, o.Score.Black, o.Score.White)
}

func newOutcome(board models.Board) Outcome {
	score := board.Score()
	outcome := Outcome{Score: score}

	if winner, ok := score.Winner(); ok {
		outcome.Winner = &winner
	}

	return outcome
}

// Game is the state of one match. It is a value: Tick returns the next Game and leaves the receiver
// unchanged.
type Game struct {
	board   models.Board
	current player.Player
	other   player.Player
	state   State
}

// New creates a game on board where first moves first. Both players are refreshed against board.
func New(board models.Board, first, second player.Player) (Game, error) {
	if first.Color() == second.Color() {
		return Game{}, ErrPlayerColors
	}

	return Game{
		board:   board,
		current: first.Refresh(board),
		other:   second.Refresh(board),
		state:   Active,
	}, nil
}

// NewStart creates a game on the start position of a board with the given length.
func NewStart(length int, first, second player.Player) (Game, error) {
	board, err := models.NewBoardStart(length)
	if err != nil {
		return Game{}, err
	}
	return New(board, first, second)
}

// Board returns the current board.
func (g Game) Board() models.Board {
	return g.board
}

// Current returns the player to move.
func (g Game) Current() player.Player {
	return g.current
}

// Other returns the player not to move.
func (g Game) Other() player.Player {
	return g.other
}

// Player returns the player with the given color.
func (g Game) Player(color models.Color) player.Player {
	if g.current.Color() == color {
		return g.current
	}
	return g.other
}

// State returns the result of the last transition.
func (g Game) State() State {
	return g.state
}

// IsOver checks if the game reached the terminal state.
func (g Game) IsOver() bool {
	return g.state == Terminal
}

// Outcome returns the final result. The second return value is false while the game is not over.
func (g Game) Outcome() (Outcome, bool) {
	if g.state != Terminal {
		return Outcome{}, false
	}
	return newOutcome(g.board), true
}

// Select stores a human selection for the current player. The game state does not change until the
// next Tick.
func (g Game) Select(landing models.Position) (Game, error) {
	if g.state == Terminal {
		return g, fmt.Errorf("%w: game is over", models.ErrIllegalMove)
	}

	current, err := g.current.WithSelection(landing)
	if err != nil {
		return g, err
	}

	g.current = current
	return g, nil
}

// Tick evaluates one transition. On error the receiver is returned unchanged. An error wrapping
// models.ErrInconsistentApplication means the game cannot continue.
func (g Game) Tick() (Game, error) {
	next, _, err := g.tick()
	return next, err
}

// tick works like Tick and also reports whether anything changed.
func (g Game) tick() (Game, bool, error) {
	if g.state == Terminal {
		return g, false, nil
	}

	if g.current.HasPassed() && g.other.HasPassed() {
		g.state = Terminal
		slog.Debug("game over", "board", g.board.String())
		return g, true, nil
	}

	if !g.current.HasLegalMove() {
		slog.Debug("forced pass", "color", g.current.Color())

		g.current, g.other = g.other, g.current.WithPass()
		g.state = ForcedPass
		return g, true, nil
	}

	moves, err := g.current.NextMove(g.board)
	if err != nil {
		return g, false, err
	}

	// No selection yet, try again next tick.
	if len(moves) == 0 {
		return g, false, nil
	}

	board, err := models.Apply(g.board, moves...)
	if err != nil {
		return g, false, fmt.Errorf("failed to apply move %s: %w", moves[0], err)
	}

	slog.Debug("move", "color", g.current.Color(), "landing", moves[0].Landing, "flips", models.TotalFlips(moves))

	g.board = board
	g.current, g.other = g.other.Refresh(board), g.current.Refresh(board)
	g.state = Active
	return g, true, nil
}

// Run ticks until the game is over, a tick changes nothing or maxTicks is reached. A tick changes
// nothing while a human player has not selected a move.
func (g Game) Run(maxTicks int) (Game, error) {
	for range maxTicks {
		next, changed, err := g.tick()
		if err != nil {
			return g, err
		}

		if !changed {
			return next, nil
		}

		g = next
	}

	return g, nil
}
