package game

// ValidMoves tries every cell for color and keeps the legal placements, in
// order of x then y. The result is empty when color cannot move.
func ValidMoves(b Board, color Color) []Move {
	var moves []Move
	for _, p := range positions {
		m := Move{Position: p, Color: color}
		if b.IsValidMove(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// HasValidMove reports whether color can place a disc anywhere.
func HasValidMove(b Board, color Color) bool {
	for _, p := range positions {
		if b.IsValidMove(Move{Position: p, Color: color}) {
			return true
		}
	}
	return false
}
