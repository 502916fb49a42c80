package models

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves_Start(t *testing.T) {
	board := mustBoardStart(t, 8)

	moves := LegalMoves(board, BLACK)

	expected := []Move{
		{Landing: Position{X: 3, Z: 5}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1},
		{Landing: Position{X: 5, Z: 3}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1},
		{Landing: Position{X: 2, Z: 4}, Anchor: Piece{X: 4, Z: 4, Color: BLACK}, Flips: 1},
		{Landing: Position{X: 4, Z: 2}, Anchor: Piece{X: 4, Z: 4, Color: BLACK}, Flips: 1},
	}
	require.Equal(t, expected, moves)

	whiteLandings := Landings(LegalMoves(board, WHITE))
	require.Equal(t, []Position{{X: 3, Z: 2}, {X: 5, Z: 4}, {X: 2, Z: 3}, {X: 4, Z: 5}}, whiteLandings)
}

func TestLegalMoves_OnlyRequestedColor(t *testing.T) {
	board := mustBoardStart(t, 6)

	for _, color := range []Color{BLACK, WHITE} {
		for _, move := range LegalMoves(board, color) {
			require.Equal(t, color, move.Color())
		}
	}
}

func TestLegalMoves_LineRunsOffBoard(t *testing.T) {
	board := mustEmptyBoard(t, 6).WithMust(
		Piece{X: 0, Z: 0, Color: WHITE},
		Piece{X: 1, Z: 0, Color: BLACK},
	)

	require.Empty(t, LegalMoves(board, BLACK))

	whiteMoves := LegalMoves(board, WHITE)
	require.Equal(t, []Move{
		{Landing: Position{X: 2, Z: 0}, Anchor: Piece{X: 0, Z: 0, Color: WHITE}, Flips: 1},
	}, whiteMoves)
}

func TestLegalMoves_LineBlockedBySameColor(t *testing.T) {
	board := mustEmptyBoard(t, 6).WithMust(
		Piece{X: 0, Z: 0, Color: BLACK},
		Piece{X: 1, Z: 0, Color: WHITE},
		Piece{X: 2, Z: 0, Color: BLACK},
	)

	require.Empty(t, LegalMoves(board, BLACK))
	require.False(t, HasLegalMove(board, BLACK))

	require.Equal(t, []Position{{X: 3, Z: 0}}, Landings(LegalMoves(board, WHITE)))
	require.True(t, HasLegalMove(board, WHITE))
}

func TestLegalMoves_LongLine(t *testing.T) {
	board := mustEmptyBoard(t, 8).WithMust(
		Piece{X: 0, Z: 0, Color: BLACK},
		Piece{X: 1, Z: 1, Color: WHITE},
		Piece{X: 2, Z: 2, Color: WHITE},
		Piece{X: 3, Z: 3, Color: WHITE},
	)

	moves := LegalMoves(board, BLACK)
	require.Equal(t, []Move{
		{Landing: Position{X: 4, Z: 4}, Anchor: Piece{X: 0, Z: 0, Color: BLACK}, Flips: 3},
	}, moves)

	next, err := Apply(board, moves...)
	require.NoError(t, err)
	require.Equal(t, Score{Black: 5, White: 0}, next.Score())
}

func TestLegalMoves_EmptyBoard(t *testing.T) {
	board := mustEmptyBoard(t, 8)

	require.Empty(t, LegalMoves(board, BLACK))
	require.Empty(t, LegalMoves(board, WHITE))
}

func TestApply_SingleLine(t *testing.T) {
	board := mustBoardStart(t, 8)

	move := Move{Landing: Position{X: 3, Z: 5}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1}
	require.True(t, ContainsMove(LegalMoves(board, BLACK), move))

	next, err := Apply(board, move)
	require.NoError(t, err)

	// Original board is unchanged
	require.Equal(t, 4, board.CountDiscs())
	require.True(t, board.HasColorAt(Position{X: 3, Z: 4}, WHITE))

	require.Equal(t, 5, next.CountDiscs())
	require.True(t, next.HasColorAt(Position{X: 3, Z: 5}, BLACK))
	require.True(t, next.HasColorAt(Position{X: 3, Z: 4}, BLACK))

	// Nothing outside the captured line changes
	require.True(t, next.HasColorAt(Position{X: 4, Z: 3}, WHITE))
	require.True(t, next.HasColorAt(Position{X: 3, Z: 3}, BLACK))
	require.True(t, next.HasColorAt(Position{X: 4, Z: 4}, BLACK))
	require.Equal(t, Score{Black: 4, White: 1}, next.Score())
}

func TestApply_MultipleLines(t *testing.T) {
	board := mustEmptyBoard(t, 6).WithMust(
		Piece{X: 0, Z: 0, Color: BLACK},
		Piece{X: 1, Z: 1, Color: WHITE},
		Piece{X: 2, Z: 0, Color: BLACK},
		Piece{X: 2, Z: 1, Color: WHITE},
	)

	moves := LegalMoves(board, BLACK)
	require.Equal(t, []Position{{X: 2, Z: 2}, {X: 0, Z: 2}}, Landings(moves))

	atLanding := MovesAt(moves, Position{X: 2, Z: 2})
	require.Len(t, atLanding, 2)
	require.Equal(t, 2, TotalFlips(atLanding))

	// Only one line
	partial, err := Apply(board, atLanding[0])
	require.NoError(t, err)
	require.True(t, partial.HasColorAt(Position{X: 1, Z: 1}, BLACK))
	require.True(t, partial.HasColorAt(Position{X: 2, Z: 1}, WHITE))

	// All lines
	full, err := Apply(board, atLanding...)
	require.NoError(t, err)
	require.Equal(t, Score{Black: 5, White: 0}, full.Score())
}

func TestApply_Errors(t *testing.T) {
	board := mustBoardStart(t, 8)

	_, err := Apply(board)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	occupied := Move{Landing: Position{X: 4, Z: 4}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1}
	_, err = Apply(board, occupied)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	outOfBounds := Move{Landing: Position{X: 8, Z: 3}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 4}
	_, err = Apply(board, outOfBounds)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	notOnLine := Move{Landing: Position{X: 5, Z: 4}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1}
	_, err = Apply(board, notOnLine)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	gap := Move{Landing: Position{X: 3, Z: 0}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 2}
	_, err = Apply(board, gap)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	missingAnchor := Move{Landing: Position{X: 3, Z: 5}, Anchor: Piece{X: 3, Z: 2, Color: BLACK}, Flips: 2}
	_, err = Apply(board, missingAnchor)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	wrongAnchorColor := Move{Landing: Position{X: 3, Z: 5}, Anchor: Piece{X: 3, Z: 4, Color: BLACK}, Flips: 0}
	_, err = Apply(board, wrongAnchorColor)
	require.ErrorIs(t, err, ErrInconsistentApplication)

	first := Move{Landing: Position{X: 3, Z: 5}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1}
	second := Move{Landing: Position{X: 5, Z: 3}, Anchor: Piece{X: 3, Z: 3, Color: BLACK}, Flips: 1}
	_, err = Apply(board, first, second)
	require.ErrorIs(t, err, ErrInconsistentApplication)
	require.False(t, errors.Is(err, ErrIllegalMove))
}

// TestRandomGames plays random games and checks move generation and application against each other.
func TestRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec

	for _, length := range []int{6, 8, 10} {
		for range 20 {
			board := mustBoardStart(t, length)
			color := BLACK
			passes := 0

			for passes < 2 {
				moves := LegalMoves(board, color)
				require.Equal(t, moves, LegalMoves(board, color))

				if len(moves) == 0 {
					passes++
					color = color.Opposite()
					continue
				}
				passes = 0

				for _, move := range moves {
					require.GreaterOrEqual(t, move.Flips, 1)
					require.True(t, board.InBounds(move.Landing))
					_, occupied := board.At(move.Landing)
					require.False(t, occupied)
				}

				landings := Landings(moves)
				chosen := MovesAt(moves, landings[rng.Intn(len(landings))])

				next, err := Apply(board, chosen...)
				require.NoError(t, err)

				flips := TotalFlips(chosen)
				require.Equal(t, board.CountDiscs()+1, next.CountDiscs())
				require.Equal(t, board.Count(color)+flips+1, next.Count(color))
				require.Equal(t, board.Count(color.Opposite())-flips, next.Count(color.Opposite()))

				for _, reply := range LegalMoves(next, color.Opposite()) {
					require.True(t, next.InBounds(reply.Landing))
					require.True(t, next.InBounds(reply.Anchor.Position()))
				}

				board = next
				color = color.Opposite()
			}

			require.False(t, HasLegalMove(board, BLACK))
			require.False(t, HasLegalMove(board, WHITE))
		}
	}
}

func mustEmptyBoard(t *testing.T, length int) Board {
	t.Helper()

	board, err := NewBoard(length)
	require.NoError(t, err)
	return board
}
