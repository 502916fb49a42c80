package models

// Score holds the disc count for both colors.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Winner returns the color with most discs. The second return value is false on a draw.
func (s Score) Winner() (Color, bool) {
	switch {
	case s.Black > s.White:
		return BLACK, true
	case s.White > s.Black:
		return WHITE, true
	default:
		return empty, false
	}
}

// Of returns the disc count for a color.
func (s Score) Of(color Color) int {
	if color == BLACK {
		return s.Black
	}
	return s.White
}
