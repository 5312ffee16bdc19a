package ui

import (
	"fmt"
	"io"
	"othello/game"
	"othello/player"
	"strings"
	"time"
)

const (
	backdrop = "\x1b[42m"
	reset    = "\x1b[0m"
)

// Console prints the board before every move and the result at the end.
type Console struct {
	out    io.Writer
	colors bool
	delay  time.Duration
}

type ConsoleOption func(c *Console)

// WithColors draws discs on a green backdrop with ANSI escapes.
func WithColors(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.colors = enabled
	}
}

// WithDelay pauses after each move so games between programs can be followed.
func WithDelay(delay time.Duration) ConsoleOption {
	return func(c *Console) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

func NewConsole(out io.Writer, options ...ConsoleOption) *Console {
	c := &Console{out: out}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Console) BeforeMove(p player.Player, board game.Board) {
	fmt.Fprint(c.out, c.Render(board))
}

func (c *Console) AfterMove(p player.Player, board game.Board) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) Pass(color game.Color) {
	fmt.Fprintf(c.out, "%s has no legal move and passes.\n", color)
}

func (c *Console) GameOver(board game.Board) {
	fmt.Fprint(c.out, c.Render(board))
}

func (c *Console) AnnounceWinner(color game.Color) {
	fmt.Fprintf(c.out, "%s wins!\n", color)
}

func (c *Console) AnnounceDraw() {
	fmt.Fprintln(c.out, "It's a draw!")
}

// Render draws board with columns A-H and rows 1-8, followed by a blank line.
func (c *Console) Render(board game.Board) string {
	var sb strings.Builder
	sb.WriteString("   A  B  C  D  E  F  G  H\n")
	for y := 0; y < game.Size; y++ {
		fmt.Fprintf(&sb, "%d ", y+1)
		if c.colors {
			sb.WriteString(backdrop)
		}
		for x := 0; x < game.Size; x++ {
			color, _, _ := board.CellAt(game.Position{X: x, Y: y})
			sb.WriteString(" " + c.disc(color) + " ")
		}
		if c.colors {
			sb.WriteString(reset)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (c *Console) disc(color game.Color) string {
	switch {
	case color == game.First && c.colors:
		return "⚫"
	case color == game.Second && c.colors:
		return "⚪"
	case color == game.First:
		return "B"
	case color == game.Second:
		return "W"
	case c.colors:
		return " "
	default:
		return "."
	}
}
