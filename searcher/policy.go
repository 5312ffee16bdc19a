package searcher

import (
	"math"
	"othello/utils"
)

const CSquared = 2.0 // Exploration constant

// Rewards are win probabilities from the point of view of the player who
// made the move into a node.
const (
	WIN  = 1.0
	LOSS = 1 - WIN
	DRAW = (WIN + LOSS) / 2
)

// stat is a child's accumulated rewards and visits, virtual losses included.
type stat struct {
	rewards float64
	visits  float64
}

// uct scores siblings by q/n + sqrt(c^2*ln(N)/n) where N is their total visits.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, siblings []stat) uct {
	N := 0.0
	for _, s := range siblings {
		N += s.visits
	}
	if N == 0 {
		panic("N cannot be 0")
	}
	return uct{numerator: cSquared * math.Log(N)}
}

func (u uct) score(s stat) float64 {
	if s.visits == 0 {
		panic("n cannot be 0")
	}
	return s.rewards/s.visits + math.Sqrt(u.numerator/s.visits)
}

// pick returns the index of the highest scoring sibling; earlier ones win ties.
func (u uct) pick(siblings []stat) int {
	return utils.ArgMax(siblings, u.score)
}
