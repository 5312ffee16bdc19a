package agent

import (
	"math"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	mu          sync.Mutex
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples its move from the search
// policy instead of playing the most visited one. Lower temperatures sharpen
// the policy; 1 samples proportionally to visits.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("Temperature must be positive")
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state)
	policy = adjustTemperature(policy, a.temperature)

	a.mu.Lock()
	sampled := a.rng.Float64()
	a.mu.Unlock()
	return sample(policy, sampled), metric
}

func adjustTemperature(policy searcher.Policy, temperature float64) searcher.Policy {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(searcher.Policy, len(policy))
	for i, choice := range policy {
		prob := math.Pow(choice.Share, exponent)
		sum += prob
		adjusted[i] = searcher.Choice{Move: choice.Move, Share: prob}
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].Share /= sum
	}
	return adjusted
}

// sample picks the move whose cumulative share first exceeds sampled in [0, 1).
func sample(policy searcher.Policy, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, choice := range policy {
		lastMove = choice.Move
		cumulative += choice.Share
		if sampled < cumulative {
			return choice.Move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
