package models

import "fmt"

// directions lists the 8 neighbor offsets in the order they are scanned.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Move places a disc of the anchor's color on Landing. It is legal because a contiguous line of
// opposing discs runs from Anchor to Landing.
type Move struct {
	Landing Position `json:"landing"`
	Anchor  Piece    `json:"anchor"`
	Flips   int      `json:"flips"`
}

// Color returns the color of the disc placed by this move.
func (m Move) Color() Color {
	return m.Anchor.Color
}

// String returns a human readable representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%s %s from %s flips %d", m.Color(), m.Landing, m.Anchor.Position(), m.Flips)
}

// LegalMoves returns all moves for color on board. Each move describes one capturing line, so a
// landing square can appear more than once. The order only depends on the board.
func LegalMoves(board Board, color Color) []Move {
	candidates := candidateMoves(board)

	moves := make([]Move, 0, len(candidates))
	for _, move := range candidates {
		if move.Color() == color {
			moves = append(moves, move)
		}
	}

	return moves
}

// candidateMoves uses every piece on the board as anchor, regardless of its color.
func candidateMoves(board Board) []Move {
	var moves []Move

	for _, anchor := range board.Pieces() {
		for _, dir := range directions {
			if move, ok := scanLine(board, anchor, dir[0], dir[1]); ok {
				moves = append(moves, move)
			}
		}
	}

	return moves
}

// scanLine walks from anchor in direction (dx, dz) over opposing discs and reports the first square
// after them if it is an empty square on the board.
func scanLine(board Board, anchor Piece, dx, dz int) (Move, bool) {
	opponent := anchor.Color.Opposite()

	flips := 0
	p := anchor.Position().Add(dx, dz)

	for board.HasColorAt(p, opponent) {
		flips++
		p = p.Add(dx, dz)
	}

	if flips == 0 || !board.InBounds(p) {
		return Move{}, false
	}

	if _, occupied := board.At(p); occupied {
		return Move{}, false
	}

	return Move{Landing: p, Anchor: anchor, Flips: flips}, true
}

// HasLegalMove checks if color has any move on board.
func HasLegalMove(board Board, color Color) bool {
	return len(LegalMoves(board, color)) > 0
}

// MovesAt returns the moves landing on p, in their original order.
func MovesAt(moves []Move, p Position) []Move {
	var found []Move
	for _, move := range moves {
		if move.Landing == p {
			found = append(found, move)
		}
	}
	return found
}

// Landings returns the distinct landing squares of moves, in order of first appearance.
func Landings(moves []Move) []Position {
	seen := make(map[Position]bool, len(moves))
	landings := make([]Position, 0, len(moves))

	for _, move := range moves {
		if !seen[move.Landing] {
			seen[move.Landing] = true
			landings = append(landings, move.Landing)
		}
	}

	return landings
}

// TotalFlips returns the number of discs flipped by playing all moves together.
func TotalFlips(moves []Move) int {
	total := 0
	for _, move := range moves {
		total += move.Flips
	}
	return total
}

// ContainsMove checks if move is in moves.
func ContainsMove(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

// Apply places one disc and flips every line described by moves. All moves must share landing and
// color, normally they are the result of MovesAt on the legal move set.
func Apply(board Board, moves ...Move) (Board, error) {
	if len(moves) == 0 {
		return Board{}, fmt.Errorf("%w: no moves", ErrInconsistentApplication)
	}

	landing := moves[0].Landing
	color := moves[0].Color()

	if !board.InBounds(landing) {
		return Board{}, fmt.Errorf("%w: landing %s out of bounds", ErrInconsistentApplication, landing)
	}

	if _, occupied := board.At(landing); occupied {
		return Board{}, fmt.Errorf("%w: landing %s is occupied", ErrInconsistentApplication, landing)
	}

	next := board.clone()
	next.cells[next.index(landing)] = color

	for _, move := range moves {
		if move.Landing != landing || move.Color() != color {
			return Board{}, fmt.Errorf("%w: moves disagree on landing or color", ErrInconsistentApplication)
		}

		if !board.HasColorAt(move.Anchor.Position(), color) {
			return Board{}, fmt.Errorf("%w: anchor %s is not a %s disc",
				ErrInconsistentApplication, move.Anchor.Position(), color)
		}

		if err := next.flipLine(move); err != nil {
			return Board{}, err
		}
	}

	return next, nil
}

// flipLine sets every square strictly between anchor and landing to the mover's color.
// It assumes b is a private copy.
func (b Board) flipLine(move Move) error {
	anchor := move.Anchor.Position()
	dx := move.Landing.X - anchor.X
	dz := move.Landing.Z - anchor.Z

	if (dx == 0 && dz == 0) || (dx != 0 && dz != 0 && abs(dx) != abs(dz)) {
		return fmt.Errorf("%w: anchor %s and landing %s are not on one line",
			ErrInconsistentApplication, anchor, move.Landing)
	}

	stepX, stepZ := sign(dx), sign(dz)

	for p := anchor.Add(stepX, stepZ); p != move.Landing; p = p.Add(stepX, stepZ) {
		if _, ok := b.At(p); !ok {
			return fmt.Errorf("%w: square %s between %s and %s is empty",
				ErrInconsistentApplication, p, anchor, move.Landing)
		}

		b.cells[b.index(p)] = move.Color()
	}

	return nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
