package game

import "fmt"

// Color identifies one of the two sides. The zero value is not a color; it is
// how an unoccupied cell is stored.
type Color uint8

const (
	First  Color = iota + 1 // Black
	Second                  // White
)

// Colors lists both colors.
var Colors = [2]Color{First, Second}

// Valid reports whether c is one of the two colors.
func (c Color) Valid() bool {
	return c == First || c == Second
}

// Invert swaps First and Second.
func Invert(c Color) (Color, error) {
	switch c {
	case First:
		return Second, nil
	case Second:
		return First, nil
	default:
		return 0, fmt.Errorf("invert %d: %w", uint8(c), ErrInvalidColor)
	}
}

// Opponent is Invert for colors already known to be valid. It panics otherwise.
func (c Color) Opponent() Color {
	inverted, err := Invert(c)
	if err != nil {
		panic(err)
	}
	return inverted
}

func (c Color) String() string {
	switch c {
	case First:
		return "black"
	case Second:
		return "white"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal %d: %w", uint8(c), ErrInvalidColor)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "black"/"white" and the aliases "first"/"second".
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "first", "b", "B":
		return First, nil
	case "white", "second", "w", "W":
		return Second, nil
	default:
		return 0, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
}
