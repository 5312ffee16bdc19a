package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedAgent always answers with the first legal move.
type fixedAgent struct {
	calls int
}

func (a *fixedAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	a.calls++
	return state.LegalMoves()[0], metrics.SearchMetric{Episodes: 7}
}

func TestEvaluationAgent(t *testing.T) {
	state := game.NewGameState(game.NewBoard(), game.First, nil)
	a := NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(50), searcher.WithMetrics(), searcher.WithSeed(5)))

	move, metric := a.FindMove(state)

	require.Contains(t, state.LegalMoves(), move, "Agent should play a legal move")
	require.Equal(t, 50, metric.Episodes)
}

func TestSamplingAgent(t *testing.T) {
	state := game.NewGameState(game.NewBoard(), game.Second, game.NewStandardRules())
	a := NewSamplingAgent(searcher.NewSampler(2, searcher.WithPlayouts(3), searcher.WithSamplerMetrics()))

	move, metric := a.FindMove(state)

	require.Contains(t, state.LegalMoves(), move, "Agent should play a legal move")
	require.Equal(t, 12, metric.Episodes, "Every move should be sampled three times")
}

func TestTrainingAgent(t *testing.T) {
	t.Run("panics without a positive temperature", func(t *testing.T) {
		require.Panics(t, func() { NewTrainingAgent(searcher.NewMCTS(1, searcher.WithEpisodes(1)), 0, 1) })
	})

	t.Run("playing a legal move", func(t *testing.T) {
		state := game.NewGameState(game.NewBoard(), game.First, nil)
		a := NewTrainingAgent(searcher.NewMCTS(1, searcher.WithEpisodes(20)), 1.0, 3)

		move, _ := a.FindMove(state)

		require.Contains(t, state.LegalMoves(), move)
	})
}

func TestAdjustTemperature(t *testing.T) {
	a := game.NewMove(game.First, 2, 4)
	b := game.NewMove(game.First, 3, 5)
	policy := searcher.Policy{{Move: a, Share: 0.75}, {Move: b, Share: 0.25}}

	t.Run("keeping the policy at temperature one", func(t *testing.T) {
		got := adjustTemperature(policy, 1.0)

		require.InDelta(t, 0.75, got[0].Share, 1e-9)
		require.InDelta(t, 0.25, got[1].Share, 1e-9)
	})

	t.Run("sharpening at low temperature", func(t *testing.T) {
		got := adjustTemperature(policy, 0.5)

		require.InDelta(t, 0.9, got[0].Share, 1e-9, "Squared shares should be renormalized")
		require.Equal(t, b, got[1].Move, "Move order should be kept")
	})

	t.Run("sampling by cumulative share", func(t *testing.T) {
		require.Equal(t, a, sample(policy, 0.0))
		require.Equal(t, a, sample(policy, 0.74))
		require.Equal(t, b, sample(policy, 0.75))
		require.Equal(t, b, sample(policy, 1.0), "Rounding errors should fall back to the last move")
	})
}

func TestAdapter(t *testing.T) {
	t.Run("searching for its own color", func(t *testing.T) {
		inner := &fixedAgent{}
		adapter := NewAdapter(inner, game.Second, nil)

		move, err := adapter.NextMove(game.NewBoard())

		require.NoError(t, err)
		require.Equal(t, game.Second, adapter.Color())
		require.Equal(t, game.Second, move.Color)
		require.True(t, game.NewBoard().IsValidMove(move))
		require.Equal(t, 7, adapter.LastSearch().Episodes, "Adapter should remember the last search")
	})

	t.Run("refusing a position without moves", func(t *testing.T) {
		board, err := game.FromCells(map[game.Position]game.Color{{X: 0, Y: 0}: game.First})
		require.NoError(t, err)
		inner := &fixedAgent{}
		adapter := NewAdapter(inner, game.Second, game.NewStandardRules())

		_, err = adapter.NextMove(board)

		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Zero(t, inner.calls, "Agent should not be asked")
	})

	t.Run("panics with an invalid color", func(t *testing.T) {
		require.Panics(t, func() { NewAdapter(&fixedAgent{}, 0, nil) })
	})
}
