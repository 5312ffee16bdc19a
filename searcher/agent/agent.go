package agent

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Agent interface {
	// FindMove returns a move for the player to move in state and performance
	// metrics (if collected) from the search
	FindMove(state game.State) (game.Move, metrics.SearchMetric)
}
