package player

import (
	"bufio"
	"fmt"
	"io"
	"othello/game"
)

// Human reads moves such as "D3" line by line and writes prompts to out until
// a legal move is entered. Two humans at one terminal share a scanner.
type Human struct {
	color   game.Color
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(color game.Color, in *bufio.Scanner, out io.Writer) *Human {
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color for player: %v", color))
	}
	return &Human{color: color, scanner: in, out: out}
}

func (p *Human) Color() game.Color {
	return p.color
}

func (p *Human) NextMove(board game.Board) (game.Move, error) {
	for {
		fmt.Fprintf(p.out, "%s's move? (e.g. A3) ", p.color)
		if !p.scanner.Scan() {
			err := p.scanner.Err()
			if err == nil {
				err = io.EOF
			}
			return game.Move{}, fmt.Errorf("reading %s's move: %w", p.color, err)
		}

		position, err := game.ParsePosition(p.scanner.Text())
		if err != nil {
			fmt.Fprintln(p.out, `Invalid input: needs to be in the format "A3".`)
			continue
		}
		move := game.Move{Position: position, Color: p.color}
		if !board.IsValidMove(move) {
			fmt.Fprintln(p.out, "Invalid move!")
			continue
		}
		return move, nil
	}
}
