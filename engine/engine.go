package engine

import (
	"errors"
	"othello/experiments/metrics"
	"othello/game"
)

// ErrTurnLimit is returned when a game is still running after the turn limit.
var ErrTurnLimit = errors.New("turn limit reached")

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (Result, error)
}

type Result struct {
	Winner game.Color // 0 on a draw
	Draw   bool
	Board  game.Board
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}
