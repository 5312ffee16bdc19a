package searcher

import "othello/game"

// mockState is a hand-built game tree: next maps a move to the state it
// leads to; unknown moves lead to an empty state.
type mockState struct {
	player game.Color
	moves  []game.Move
	next   map[game.Move]mockState
	played []game.Move
	hash   game.StateHash
	winner game.Color
}

func (m mockState) Player() game.Color {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move) game.State {
	played := append(append([]game.Move{}, m.played...), move)
	if child, ok := m.next[move]; ok {
		child.played = played
		return child
	}
	return mockState{played: played}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winner() game.Color {
	return m.winner
}

var (
	moveA = game.NewMove(game.First, 0, 0)
	moveB = game.NewMove(game.First, 1, 0)
)

// forcedWin is a position where black wins by playing A and loses by playing B.
func forcedWin() mockState {
	return mockState{
		player: game.First,
		moves:  []game.Move{moveB, moveA},
		hash:   1,
		next: map[game.Move]mockState{
			moveA: {player: game.Second, hash: 2, winner: game.First},
			moveB: {player: game.Second, hash: 3, winner: game.Second},
		},
	}
}
