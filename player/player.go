package player

import (
	"fmt"
	"othello/game"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Player chooses moves for one color.
type Player interface {
	Color() game.Color
	// NextMove returns a move for the player's color on board. The engine
	// only asks when that color has a legal move.
	NextMove(board game.Board) (game.Move, error)
}

// Random plays a uniformly random legal move.
type Random struct {
	color game.Color
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewRandom returns a random player; seed 0 seeds from the clock.
func NewRandom(color game.Color, seed uint64) *Random {
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color for player: %v", color))
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{color: color, rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Color() game.Color {
	return p.color
}

func (p *Random) NextMove(board game.Board) (game.Move, error) {
	moves := game.ValidMoves(board, p.color)
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("%s has no legal move: %w", p.color, game.ErrInvalidMove)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return moves[p.rng.Intn(len(moves))], nil
}
