package searcher

import (
	"math"
	"othello/experiments/metrics"
	"othello/game"
	"othello/utils"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MaxCutoff disables the rollout cutoff; playouts run to the end of the game.
const MaxCutoff = math.MaxInt

// reuseDepth is how many plies below the previous root a new search looks for
// the current position: our move and the opponent's reply.
const reuseDepth = 2

type Option func(mcts *MCTS)

// Choice is a root move and its share of the root visits.
type Choice struct {
	Move  game.Move
	Share float64
}

// Policy lists root moves in expansion order.
type Policy []Choice

// Best returns the most visited move; earlier moves win ties.
func (p Policy) Best() (game.Move, bool) {
	i := utils.ArgMax(p, func(c Choice) float64 { return c.Share })
	if i < 0 {
		return game.Move{}, false
	}
	return p[i].Move, true
}

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// WithSeed makes rollouts reproducible for a fixed number of goroutines and episodes.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines <= 0 {
		panic("Must use at least one goroutine")
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateDiscs,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the root policy. The subtree of a
// previous search is reused when state is found within two plies of its root.
func (m *MCTS) Simulate(state game.State) (Policy, metrics.SearchMetric) {
	m.findRoot(state)

	// Run simulations to collect statistics
	cutoff := m.cutoff
	if cutoff == MaxCutoff {
		cutoff = 0
	}
	m.metrics.Start(m.goroutines, cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

// Reset drops the search tree.
func (m *MCTS) Reset() {
	m.root = nil
}

// iterate runs exactly m.episodes simulations.
func (m *MCTS) iterate(state game.State) {
	var remaining atomic.Int64
	remaining.Store(int64(m.episodes))
	m.search(state, func() bool {
		return remaining.Add(-1) >= 0
	})
}

// countdown runs simulations until m.duration has passed.
func (m *MCTS) countdown(state game.State) {
	deadline := time.Now().Add(m.duration)
	m.search(state, func() bool {
		return time.Now().Before(deadline)
	})
}

// search runs simulations on every goroutine while next reports true. Each
// goroutine owns a random source derived from the base seed.
func (m *MCTS) search(state game.State, next func() bool) {
	seed := m.baseSeed()
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for next() {
				m.simulate(state, rng)
				m.metrics.AddEpisode()
			}
		}(rand.New(rand.NewSource(seed + uint64(i))))
	}
	wg.Wait()
}

func (m *MCTS) baseSeed() uint64 {
	if m.seed != 0 {
		return m.seed
	}
	return uint64(time.Now().UnixNano())
}

func (m *MCTS) findRoot(state game.State) {
	hash := state.Hash()
	var root *decision
	if m.root != nil {
		root = m.root.find(hash, reuseDepth)
	}
	if root == nil {
		if m.root != nil {
			log.Debug().Msgf("state hash %d not found below previous root, resetting tree", hash)
		}
		m.root = newDecision(nil, 0, state)
		m.metrics.SetTreeReset(true)
		return
	}
	root.parent = nil
	m.root = root
	m.metrics.SetTreeReset(false)
}

func (m *MCTS) simulate(state game.State, rng *rand.Rand) {
	newNode, newState := selectThenExpand(m.root, state)
	player, score := rollout(newState, m.cutoff, m.evaluate, m.metrics, rng)
	backup(newNode, player, score)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays uniformly random moves until the game ends or cutoff moves
// were made. It returns a player and the result for that player in [0, 1].
func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector, rng *rand.Rand) (game.Color, float64) {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		if winner := state.Winner(); winner != 0 {
			return winner, WIN
		}
		return state.Player(), DRAW
	}

	// At cutoff state, map the evaluation from the current player's perspective onto [0, 1]
	return state.Player(), (evaluate(state) + 1) / 2
}

func backup(newNode *decision, player game.Color, score float64) {
	node := newNode
	for node != nil {
		parent := node.Backup(player, score)
		node = parent
	}
}
