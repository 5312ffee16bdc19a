package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state)
	move, _ := policy.Best()
	return move, metric
}

type samplingAgent struct {
	sampler *searcher.Sampler
}

// NewSamplingAgent returns an agent that plays the move whose random playouts
// it wins most often.
func NewSamplingAgent(sampler *searcher.Sampler) Agent {
	return samplingAgent{sampler: sampler}
}

func (a samplingAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	rankings, metric := a.sampler.Rank(state)
	move, _ := searcher.Best(rankings)
	return move, metric
}
