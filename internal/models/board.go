package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	MinBoardLength     = 6
	MaxBoardLength     = 10
	DefaultBoardLength = 8
)

// Board is an immutable snapshot of all discs on a square board.
type Board struct {
	length int

	// cells is indexed by x*length+z, empty squares hold the zero Color
	cells []Color
}

// NewBoard creates an empty board with the given side length.
func NewBoard(length int) (Board, error) {
	if length < 1 {
		return Board{}, fmt.Errorf("invalid board length: %d", length)
	}

	return Board{
		length: length,
		cells:  make([]Color, length*length),
	}, nil
}

// NewBoardStart creates a board with the four center discs in starting position.
func NewBoardStart(length int) (Board, error) {
	if length < 2 || length%2 != 0 {
		return Board{}, fmt.Errorf("invalid board length for start position: %d", length)
	}

	board, err := NewBoard(length)
	if err != nil {
		return Board{}, err
	}

	middle := length / 2
	offMiddle := middle - 1

	return board.With(
		Piece{X: offMiddle, Z: offMiddle, Color: BLACK},
		Piece{X: offMiddle, Z: middle, Color: WHITE},
		Piece{X: middle, Z: middle, Color: BLACK},
		Piece{X: middle, Z: offMiddle, Color: WHITE},
	)
}

// Length returns the side length of the board.
func (b Board) Length() int {
	return b.length
}

// InBounds checks if a position lies on the board.
func (b Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.length && p.Z >= 0 && p.Z < b.length
}

// At returns the color of the disc at p. The second return value is false if the square is empty or
// out of bounds.
func (b Board) At(p Position) (Color, bool) {
	if !b.InBounds(p) {
		return empty, false
	}

	color := b.cells[b.index(p)]
	return color, color != empty
}

// Contains checks if any piece occupies the square of piece, regardless of color.
func (b Board) Contains(piece Piece) bool {
	_, ok := b.At(piece.Position())
	return ok
}

// HasColorAt checks if a disc of the given color is at p.
func (b Board) HasColorAt(p Position, color Color) bool {
	found, ok := b.At(p)
	return ok && found == color
}

func (b Board) index(p Position) int {
	return p.X*b.length + p.Z
}

// With returns a new board with the given pieces added. Pieces must be in bounds and must not land on
// an occupied square.
func (b Board) With(pieces ...Piece) (Board, error) {
	next := b.clone()

	for _, piece := range pieces {
		p := piece.Position()

		if !next.InBounds(p) {
			return Board{}, fmt.Errorf("piece %s is out of bounds", p)
		}

		if !piece.Color.IsValid() {
			return Board{}, fmt.Errorf("piece %s has invalid color", p)
		}

		if next.Contains(piece) {
			return Board{}, fmt.Errorf("square %s is already occupied", p)
		}

		next.cells[next.index(p)] = piece.Color
	}

	return next, nil
}

// WithMust works like With, but panics on error.
func (b Board) WithMust(pieces ...Piece) Board {
	next, err := b.With(pieces...)
	if err != nil {
		panic(err)
	}
	return next
}

func (b Board) clone() Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)

	return Board{
		length: b.length,
		cells:  cells,
	}
}

// Pieces returns all pieces on the board, ordered by x and then z.
func (b Board) Pieces() []Piece {
	pieces := make([]Piece, 0, len(b.cells))

	for x := range b.length {
		for z := range b.length {
			if color := b.cells[x*b.length+z]; color != empty {
				pieces = append(pieces, NewPiece(Position{X: x, Z: z}, color))
			}
		}
	}

	return pieces
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	count := 0
	for _, color := range b.cells {
		if color != empty {
			count++
		}
	}
	return count
}

// Count returns the number of discs of one color.
func (b Board) Count(color Color) int {
	count := 0
	for _, c := range b.cells {
		if c == color {
			count++
		}
	}
	return count
}

// Score returns the disc count per color.
func (b Board) Score() Score {
	return Score{
		Black: b.Count(BLACK),
		White: b.Count(WHITE),
	}
}

// Equal checks if two boards have the same length and discs.
func (b Board) Equal(other Board) bool {
	if b.length != other.length || len(b.cells) != len(other.cells) {
		return false
	}

	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}

	return true
}

// ASCIIArtLines returns the ascii art lines for the board. Rows are z, columns are x. Marked squares
// are shown with a dot when empty.
func (b Board) ASCIIArtLines(marked ...Position) []string {
	markedSet := make(map[Position]bool, len(marked))
	for _, p := range marked {
		markedSet[p] = true
	}

	lines := make([]string, 0, b.length+2)

	var header strings.Builder
	header.WriteString("+-")
	for x := range b.length {
		fmt.Fprintf(&header, "%d-", x)
	}
	header.WriteString("+")
	lines = append(lines, header.String())

	for z := range b.length {
		var line strings.Builder
		fmt.Fprintf(&line, "%d ", z)

		for x := range b.length {
			p := Position{X: x, Z: z}
			color, ok := b.At(p)

			switch {
			case ok && color == WHITE:
				line.WriteString("○ ")
			case ok && color == BLACK:
				line.WriteString("● ")
			case markedSet[p]:
				line.WriteString("· ")
			default:
				line.WriteString("  ")
			}
		}

		lines = append(lines, line.String()+"|")
	}

	lines = append(lines, "+"+strings.Repeat("-", 2*b.length+1)+"+")

	return lines
}

// String returns a compact representation: one row per x, 'b', 'w' or '.' per square, rows joined by '/'.
func (b Board) String() string {
	rows := make([]string, b.length)

	for x := range b.length {
		row := make([]byte, b.length)
		for z := range b.length {
			switch b.cells[x*b.length+z] {
			case BLACK:
				row[z] = 'b'
			case WHITE:
				row[z] = 'w'
			default:
				row[z] = '.'
			}
		}
		rows[x] = string(row)
	}

	return strings.Join(rows, "/")
}

// NewBoardFromString parses the output of Board.String.
func NewBoardFromString(s string) (Board, error) {
	rows := strings.Split(s, "/")

	board, err := NewBoard(len(rows))
	if err != nil {
		return Board{}, err
	}

	for x, row := range rows {
		if len(row) != len(rows) {
			return Board{}, fmt.Errorf("row %d has length %d, expected %d", x, len(row), len(rows))
		}

		for z := range len(row) {
			switch row[z] {
			case 'b':
				board.cells[x*board.length+z] = BLACK
			case 'w':
				board.cells[x*board.length+z] = WHITE
			case '.':
			default:
				return Board{}, fmt.Errorf("invalid square %q at (%d,%d)", row[z], x, z)
			}
		}
	}

	return board, nil
}

type boardJSON struct {
	Length int     `json:"length"`
	Pieces []Piece `json:"pieces"`
}

// MarshalJSON marshals the board as its length and list of pieces.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Length: b.length,
		Pieces: b.Pieces(),
	})
}

// UnmarshalJSON unmarshals a board from its length and list of pieces.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	if raw.Length == 0 {
		return errors.New("invalid board: missing length")
	}

	board, err := NewBoard(raw.Length)
	if err != nil {
		return err
	}

	board, err = board.With(raw.Pieces...)
	if err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	*b = board
	return nil
}
