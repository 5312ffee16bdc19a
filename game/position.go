package game

import (
	"fmt"
	"strings"
)

// Size is the number of cells along each side of the board.
const Size = 8

// Position is a cell coordinate. X is the column (A-H), Y is the row (1-8).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether both coordinates lie in [0,7].
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

func (p Position) check() error {
	if !p.InBounds() {
		return fmt.Errorf("position (%d, %d): %w", p.X, p.Y, ErrOutOfRange)
	}
	return nil
}

// String renders the position as column letter plus row digit, e.g. "A3".
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d, %d)", p.X, p.Y)
	}
	return string(rune('A'+p.X)) + string(rune('1'+p.Y))
}

// ParsePosition reads notation such as "A3" (= (0, 2)). Letters are case-insensitive.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Position{}, fmt.Errorf("parse %q: %w", s, ErrMalformedNotation)
	}
	col := s[0]
	if col >= 'a' && col <= 'h' {
		col -= 'a' - 'A'
	}
	row := s[1]
	if col < 'A' || col > 'H' || row < '1' || row > '8' {
		return Position{}, fmt.Errorf("parse %q: %w", s, ErrMalformedNotation)
	}
	return Position{X: int(col - 'A'), Y: int(row - '1')}, nil
}

// positions holds all 64 cells, x outer and y inner.
var positions = func() []Position {
	ps := make([]Position, 0, Size*Size)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			ps = append(ps, Position{X: x, Y: y})
		}
	}
	return ps
}()
