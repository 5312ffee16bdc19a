package game

// StandardRules make a stuck player pass. The game ends when neither side can
// move, and the color with more discs wins.
type StandardRules struct{}

func NewStandardRules() StandardRules {
	return StandardRules{}
}

func (StandardRules) Name() string {
	return "standard"
}

func (StandardRules) Resolve(b Board, stuck Color) (Color, Outcome) {
	opponent := stuck.Opponent()
	if HasValidMove(b, opponent) {
		return opponent, Outcome{}
	}

	mine, theirs := b.Count(stuck), b.Count(opponent)
	switch {
	case mine > theirs:
		return stuck, Outcome{Over: true, Winner: stuck}
	case theirs > mine:
		return stuck, Outcome{Over: true, Winner: opponent}
	default:
		return stuck, Outcome{Over: true}
	}
}
