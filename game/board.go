package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is an immutable 8x8 grid. Copies are independent, and every method
// that changes cells returns a new Board, so boards can be shared freely
// between goroutines running playouts.
type Board struct {
	cells [Size][Size]Color
}

// Cell is one occupied square, as used by Cells and the JSON encoding.
type Cell struct {
	Position
	Color Color `json:"color"`
}

// NewBoard returns the standard opening position.
func NewBoard() Board {
	var b Board
	b.cells[3][3] = First
	b.cells[4][4] = First
	b.cells[4][3] = Second
	b.cells[3][4] = Second
	return b
}

// FromCells rebuilds a board from an occupancy mapping. Positions absent
// from the mapping are empty.
func FromCells(cells map[Position]Color) (Board, error) {
	var b Board
	for p, c := range cells {
		if err := p.check(); err != nil {
			return Board{}, err
		}
		if !c.Valid() {
			return Board{}, fmt.Errorf("cell %s: %w", p, ErrInvalidColor)
		}
		b.cells[p.X][p.Y] = c
	}
	return b, nil
}

// Cells returns the occupied cells as a mapping.
func (b Board) Cells() map[Position]Color {
	cells := make(map[Position]Color)
	for _, p := range positions {
		if c := b.at(p); c != 0 {
			cells[p] = c
		}
	}
	return cells
}

// CellAt reports the color on p and whether the cell is occupied.
func (b Board) CellAt(p Position) (Color, bool, error) {
	if err := p.check(); err != nil {
		return 0, false, err
	}
	c := b.at(p)
	return c, c != 0, nil
}

// at reads an in-bounds cell; 0 means empty.
func (b Board) at(p Position) Color {
	return b.cells[p.X][p.Y]
}

// IsValidMove reports whether m places a disc on an empty cell and captures
// along at least one ray.
func (b Board) IsValidMove(m Move) bool {
	if !m.InBounds() || !m.Color.Valid() || b.at(m.Position) != 0 {
		return false
	}
	for _, ray := range CastRays(m.Position) {
		if b.captured(ray, m.Color) != nil {
			return true
		}
	}
	return false
}

// ApplyMove returns the board after m: the disc is placed and every bracketed
// opponent run is flipped. An invalid move yields ErrInvalidMove and b itself.
func (b Board) ApplyMove(m Move) (Board, error) {
	if err := m.check(); err != nil {
		return b, err
	}
	if !m.Color.Valid() {
		return b, fmt.Errorf("move %s: %w", m.Position, ErrInvalidColor)
	}
	if !b.IsValidMove(m) {
		return b, fmt.Errorf("%s: %w", m, ErrInvalidMove)
	}

	next := b
	next.cells[m.X][m.Y] = m.Color
	for _, ray := range CastRays(m.Position) {
		for _, p := range b.captured(ray, m.Color) {
			next.cells[p.X][p.Y] = m.Color
		}
	}
	return next, nil
}

// Flips returns the positions m would flip, nearest first per direction.
func (b Board) Flips(m Move) []Position {
	if !b.IsValidMove(m) {
		return nil
	}
	var flips []Position
	for _, ray := range CastRays(m.Position) {
		flips = append(flips, b.captured(ray, m.Color)...)
	}
	return flips
}

// Count returns the number of discs of color c.
func (b Board) Count(c Color) int {
	n := 0
	for _, p := range positions {
		if b.at(p) == c {
			n++
		}
	}
	return n
}

// Occupied returns the number of discs on the board.
func (b Board) Occupied() int {
	return b.Count(First) + b.Count(Second)
}

func (b Board) MarshalJSON() ([]byte, error) {
	cells := []Cell{}
	for _, p := range positions {
		if c := b.at(p); c != 0 {
			cells = append(cells, Cell{Position: p, Color: c})
		}
	}
	return json.Marshal(cells)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	mapping := make(map[Position]Color, len(cells))
	for _, cell := range cells {
		if _, ok := mapping[cell.Position]; ok {
			return fmt.Errorf("decoding board at %s: %w", cell.Position, ErrDuplicateCell)
		}
		mapping[cell.Position] = cell.Color
	}
	decoded, err := FromCells(mapping)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String renders the board with columns A-H and rows 1-8; "B" is black,
// "W" is white and "." is empty.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for y := 0; y < Size; y++ {
		sb.WriteByte(byte('1' + y))
		for x := 0; x < Size; x++ {
			sb.WriteByte(' ')
			switch b.cells[x][y] {
			case First:
				sb.WriteByte('B')
			case Second:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
