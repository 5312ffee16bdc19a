package game

import "fmt"

// Outcome describes how a game ended. A zero Outcome means the game goes on.
type Outcome struct {
	Over   bool
	Winner Color // 0 on a draw
}

// Draw reports whether the game ended without a winner.
func (o Outcome) Draw() bool {
	return o.Over && o.Winner == 0
}

// Rules decide what happens when the player to move has no legal move.
type Rules interface {
	Name() string
	// Resolve returns who moves next and whether the game is over, given that
	// stuck has no legal move on b.
	Resolve(b Board, stuck Color) (next Color, outcome Outcome)
}

// RulesByName returns "forfeit" or "standard" rules.
func RulesByName(name string) (Rules, error) {
	switch name {
	case "", ForfeitRules{}.Name():
		return NewForfeitRules(), nil
	case StandardRules{}.Name():
		return NewStandardRules(), nil
	default:
		return nil, fmt.Errorf("unknown rules %q", name)
	}
}

// ForfeitRules end the game as soon as a player cannot move; that player loses.
// This is not tournament Othello, but it is how the console game has always
// been scored.
type ForfeitRules struct{}

func NewForfeitRules() ForfeitRules {
	return ForfeitRules{}
}

func (ForfeitRules) Name() string {
	return "forfeit"
}

func (ForfeitRules) Resolve(b Board, stuck Color) (Color, Outcome) {
	return stuck, Outcome{Over: true, Winner: stuck.Opponent()}
}
