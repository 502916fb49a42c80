package models

import "fmt"

// Position is a square on the board.
type Position struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Add returns the position moved by dx and dz.
func (p Position) Add(dx, dz int) Position {
	return Position{X: p.X + dx, Z: p.Z + dz}
}

// String returns a human readable representation like "(2,4)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// Piece is a disc placed on the board.
type Piece struct {
	X     int   `json:"x"`
	Z     int   `json:"z"`
	Color Color `json:"color"`
}

// NewPiece creates a piece at position p.
func NewPiece(p Position, color Color) Piece {
	return Piece{X: p.X, Z: p.Z, Color: color}
}

// Position returns the square the piece is on.
func (p Piece) Position() Position {
	return Position{X: p.X, Z: p.Z}
}
