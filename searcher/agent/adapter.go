package agent

import (
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
)

// Adapter plays one color of a game with an Agent. It satisfies
// player.Player and remembers the metrics of its last search.
type Adapter struct {
	agent Agent
	color game.Color
	rules game.Rules
	last  metrics.SearchMetric
}

func NewAdapter(agent Agent, color game.Color, rules game.Rules) *Adapter {
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color for agent: %v", color))
	}
	if rules == nil {
		rules = game.NewForfeitRules()
	}
	return &Adapter{agent: agent, color: color, rules: rules}
}

func (a *Adapter) Color() game.Color {
	return a.color
}

func (a *Adapter) NextMove(board game.Board) (game.Move, error) {
	state := game.NewGameState(board, a.color, a.rules)
	if state.Over() || state.Player() != a.color {
		return game.Move{}, fmt.Errorf("%s has no move to search: %w", a.color, game.ErrInvalidMove)
	}
	move, metric := a.agent.FindMove(state)
	a.last = metric
	return move, nil
}

// LastSearch returns the metrics of the most recent NextMove.
func (a *Adapter) LastSearch() metrics.SearchMetric {
	return a.last
}
