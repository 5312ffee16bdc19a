package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	t.Run("opening position is in play", func(t *testing.T) {
		gs := NewGameState(NewBoard(), First, nil)

		require.Equal(t, First, gs.Player())
		require.False(t, gs.Over())
		require.Len(t, gs.LegalMoves(), 4)
		require.Equal(t, "forfeit", gs.Rules.Name(), "Forfeit rules should be the default")
	})

	t.Run("stuck player forfeits", func(t *testing.T) {
		b := mustBoard(t, map[Position]Color{{0, 0}: Second, {1, 0}: First})

		gs := NewGameState(b, First, NewForfeitRules())

		require.True(t, gs.Over())
		require.Equal(t, Second, gs.Winner())
		require.Empty(t, gs.LegalMoves(), "Finished games have no legal moves")
	})

	t.Run("stuck player passes under standard rules", func(t *testing.T) {
		b := mustBoard(t, map[Position]Color{{0, 0}: Second, {1, 0}: First})

		gs := NewGameState(b, First, NewStandardRules())

		require.False(t, gs.Over())
		require.Equal(t, Second, gs.Player(), "Turn should pass to white")
		require.Equal(t, First, gs.Passed)
		require.Equal(t, []Move{NewMove(Second, 2, 0)}, gs.LegalMoves())
	})

	t.Run("both players stuck ends a standard game by disc count", func(t *testing.T) {
		b := mustBoard(t, map[Position]Color{{0, 0}: Second, {7, 7}: Second, {3, 7}: First})

		gs := NewGameState(b, First, NewStandardRules())

		require.True(t, gs.Over())
		require.Equal(t, Second, gs.Winner())
		require.False(t, gs.Outcome.Draw())
	})

	t.Run("equal counts draw", func(t *testing.T) {
		b := mustBoard(t, map[Position]Color{{0, 0}: First, {7, 7}: Second})

		gs := NewGameState(b, Second, NewStandardRules())

		require.True(t, gs.Over())
		require.Equal(t, Color(0), gs.Winner())
		require.True(t, gs.Outcome.Draw())
	})

	t.Run("panics without a color to move", func(t *testing.T) {
		require.Panics(t, func() { NewGameState(NewBoard(), 0, nil) })
	})
}

func TestGameStatePlay(t *testing.T) {
	t.Run("playing hands the turn over", func(t *testing.T) {
		gs := NewGameState(NewBoard(), First, nil)

		next := gs.Play(NewMove(First, 2, 4)).(*GameState)

		require.Equal(t, Second, next.Player())
		require.Equal(t, 4, next.Board.Count(First))
		require.Equal(t, 1, next.Board.Count(Second))
		require.Equal(t, NewBoard(), gs.Board, "Original state should not change")
	})

	t.Run("rejecting a move for the wrong color", func(t *testing.T) {
		gs := NewGameState(NewBoard(), First, nil)

		_, err := gs.Apply(NewMove(Second, 2, 3))

		require.ErrorIs(t, err, ErrInvalidMove)
		require.Panics(t, func() { gs.Play(NewMove(Second, 2, 3)) })
	})

	t.Run("rejecting an illegal placement", func(t *testing.T) {
		gs := NewGameState(NewBoard(), First, nil)

		_, err := gs.Apply(NewMove(First, 0, 0))

		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("rejecting moves after the game is over", func(t *testing.T) {
		b := mustBoard(t, map[Position]Color{{0, 0}: Second, {1, 0}: First})
		gs := NewGameState(b, First, nil)

		_, err := gs.Apply(NewMove(First, 2, 0))

		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("random games always finish", func(t *testing.T) {
		for _, rules := range []Rules{NewForfeitRules(), NewStandardRules()} {
			var s State = NewGameState(NewBoard(), First, rules)
			plies := 0
			for moves := s.LegalMoves(); len(moves) > 0; moves = s.LegalMoves() {
				s = s.Play(moves[len(moves)-1])
				plies++
			}
			require.LessOrEqual(t, plies, Size*Size-4, "Each move fills one empty cell")
			require.True(t, s.(*GameState).Over())
		}
	})
}

func TestGameStateHash(t *testing.T) {
	a := NewGameState(NewBoard(), First, nil)
	b := NewGameState(NewBoard(), First, NewStandardRules())
	c := NewGameState(NewBoard(), Second, nil)
	d := a.Play(NewMove(First, 2, 4))

	require.Equal(t, a.Hash(), b.Hash(), "Hash should depend on board and turn only")
	require.NotEqual(t, a.Hash(), c.Hash(), "Turn should change the hash")
	require.NotEqual(t, a.Hash(), d.Hash(), "Board should change the hash")
}

func TestRulesByName(t *testing.T) {
	r, err := RulesByName("standard")
	require.NoError(t, err)
	require.IsType(t, StandardRules{}, r)

	r, err = RulesByName("")
	require.NoError(t, err)
	require.IsType(t, ForfeitRules{}, r)

	_, err = RulesByName("speed")
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	t.Run("balanced opening", func(t *testing.T) {
		gs := NewGameState(NewBoard(), First, nil)

		require.Equal(t, 0.0, EvaluateDiscs(gs))
		require.Equal(t, 0.0, EvaluateMobility(gs))
	})

	t.Run("scoring from the player to move", func(t *testing.T) {
		gs := NewGameState(NewBoard(), Second, nil).Play(NewMove(Second, 2, 3))

		require.InDelta(t, -0.6, EvaluateDiscs(gs), 1e-9, "Black has 1 disc against 4")
	})

	t.Run("panics on foreign states", func(t *testing.T) {
		require.Panics(t, func() { EvaluateDiscs(nil) })
	})
}
