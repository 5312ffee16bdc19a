package game

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Color
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	// Winner is 0 while the game is running or when it ended in a draw.
	Winner() Color
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the position is for the player to move.
type Evaluate func(State) float64
