package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color is the color of a disc. The zero value is not a valid color, it marks an empty square.
type Color int8

const (
	BLACK Color = -1
	WHITE Color = 1
	empty Color = 0
)

// ParseColor parses a color name, case insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "black":
		return BLACK, nil
	case "white":
		return WHITE, nil
	default:
		return empty, fmt.Errorf("invalid color: %q", s)
	}
}

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return -c
}

// IsValid checks if c is BLACK or WHITE.
func (c Color) IsValid() bool {
	return c == BLACK || c == WHITE
}

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	default:
		return "empty"
	}
}

// MarshalJSON marshals a color as its name.
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("cannot marshal color %d", c)
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON unmarshals a color from its name.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}

	color, err := ParseColor(s)
	if err != nil {
		return err
	}

	*c = color
	return nil
}
