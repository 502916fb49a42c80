package models

import "errors"

var (
	// ErrIllegalMove is returned when a selected move is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInconsistentApplication is returned when a move cannot be applied to a board. This means move
	// generation and move application disagree, so the game cannot continue.
	ErrInconsistentApplication = errors.New("inconsistent move application")
)
