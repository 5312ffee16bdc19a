package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/utils"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

// Sampler ranks moves by flat Monte-Carlo sampling: every legal move is
// followed by a number of random self-play games, and the move whose games
// the mover wins most often is preferred. It only needs the game.State
// contract, so playouts of different moves share nothing but immutable states.
type Sampler struct {
	goroutines int
	playouts   int
	seed       uint64
	metrics    metrics.Collector
}

type SamplerOption func(s *Sampler)

// WithPlayouts sets the number of random games per candidate move.
func WithPlayouts(playouts int) SamplerOption {
	return func(s *Sampler) {
		if playouts > 0 {
			s.playouts = playouts
		}
	}
}

func WithSamplerSeed(seed uint64) SamplerOption {
	return func(s *Sampler) {
		s.seed = seed
	}
}

func WithSamplerMetrics() SamplerOption {
	return func(s *Sampler) {
		s.metrics = metrics.NewCollector()
	}
}

// DefaultPlayouts is the number of games sampled per move when unset.
const DefaultPlayouts = 10

func NewSampler(goroutines int, options ...SamplerOption) *Sampler {
	if goroutines <= 0 {
		panic("Must use at least one goroutine")
	}
	s := &Sampler{
		goroutines: goroutines,
		playouts:   DefaultPlayouts,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Ranking is the sampled record of one candidate move.
type Ranking struct {
	Move     game.Move
	Wins     int
	Playouts int
}

// Rank samples every legal move of state. Rankings follow the order of
// state.LegalMoves().
func (s *Sampler) Rank(state game.State) ([]Ranking, metrics.SearchMetric) {
	s.metrics.Start(s.goroutines, 0)

	mover := state.Player()
	moves := state.LegalMoves()
	children := make([]game.State, len(moves))
	for i, move := range moves {
		children[i] = state.Play(move)
	}

	// Task t samples move t / playouts with its own seed, so the result does
	// not depend on which goroutine picks it up.
	total := len(moves) * s.playouts
	task := make(chan int, total)
	for t := 0; t < total; t++ {
		task <- t
	}
	close(task)

	seed := s.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	wins := make([]atomic.Int64, len(moves))
	var wg sync.WaitGroup
	for i := 0; i < s.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range task {
				index := t / s.playouts
				rng := rand.New(rand.NewSource(seed + uint64(t)))
				player, score := rollout(children[index], MaxCutoff, nil, s.metrics, rng)
				if player == mover && score == WIN {
					wins[index].Add(1)
				}
				s.metrics.AddEpisode()
			}
		}()
	}
	wg.Wait()

	rankings := make([]Ranking, len(moves))
	for i, move := range moves {
		rankings[i] = Ranking{Move: move, Wins: int(wins[i].Load()), Playouts: s.playouts}
	}
	return rankings, s.metrics.Complete()
}

// Best returns the move with the most sampled wins; earlier moves win ties.
func Best(rankings []Ranking) (game.Move, bool) {
	i := utils.ArgMax(rankings, func(r Ranking) float64 { return float64(r.Wins) })
	if i < 0 {
		return game.Move{}, false
	}
	return rankings[i].Move, true
}
