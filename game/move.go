package game

import "fmt"

// Move is a request to place a disc of Color at Position.
type Move struct {
	Position
	Color Color `json:"color"`
}

// NewMove builds a move for color at (x, y).
func NewMove(color Color, x, y int) Move {
	return Move{Position: Position{X: x, Y: y}, Color: color}
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Color, m.Position)
}
