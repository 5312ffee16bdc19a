package game

// EvaluateDiscs scores the disc balance between -1 and 1 from the point of
// view of the player to move.
func EvaluateDiscs(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Turn
	return normalize(float64(gs.Board.Count(current)), float64(gs.Board.Count(current.Opponent())))
}

// EvaluateMobility scores the balance of legal moves, falling back to discs
// when neither side can move.
func EvaluateMobility(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Turn
	mine := len(ValidMoves(gs.Board, current))
	theirs := len(ValidMoves(gs.Board, current.Opponent()))
	if mine+theirs == 0 {
		return EvaluateDiscs(s)
	}
	return normalize(float64(mine), float64(theirs))
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
