package searcher

import (
	"othello/game"
	"sync"
)

// decision is a tree node for a position. Rewards are kept from the point of
// view of mover, the player whose move led to the node (0 at the root).
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      game.Color
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, mover game.Color, state game.State) *decision {
	moves := state.LegalMoves()
	unexplored := make([]game.Move, len(moves))
	copy(unexplored, moves)

	return &decision{
		parent:     parent,
		mover:      mover,
		hash:       state.Hash(),
		unexplored: unexplored,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It expands the next unexplored move if
// there is one, otherwise selects the child with the highest UCT value. A
// terminal node returns itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		childState := state.Play(move)
		child := newDecision(d, state.Player(), childState)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

// pickChild returns the index of the max UCT child. N sums the children's
// visits, which include pending virtual losses, so it is never 0.
func (d *decision) pickChild() int {
	siblings := make([]stat, len(d.children))
	for i, child := range d.children {
		siblings[i] = child.stats()
	}
	return newUCT(CSquared, siblings).pick(siblings)
}

func (d *decision) stats() stat {
	d.RLock()
	defer d.RUnlock()

	return stat{rewards: d.rewards, visits: d.visits}
}

// applyLoss records a temporary loss so concurrent searches spread out.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

// Backup replaces the virtual loss by the playout result and returns the
// parent. score is the result for player.
func (d *decision) Backup(player game.Color, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.mover, player, score)
	d.visits++

	return d.parent
}

func reward(mover, player game.Color, score float64) float64 {
	if mover == player {
		return score
	}
	return WIN - score
}

// Policy returns each explored move's share of the root visits.
func (d *decision) Policy() Policy {
	d.RLock()
	defer d.RUnlock()

	policy := make(Policy, 0, len(d.children))
	total := 0.0
	visits := make([]float64, len(d.children))
	for i, child := range d.children {
		visits[i] = child.stats().visits
		total += visits[i]
	}
	for i, move := range d.explored {
		share := 0.0
		if total > 0 {
			share = visits[i] / total
		}
		policy = append(policy, Choice{Move: move, Share: share})
	}
	return policy
}

// find looks for the node of hash among d and its descendants up to depth plies.
func (d *decision) find(hash game.StateHash, depth int) *decision {
	if d.hash == hash {
		return d
	}
	if depth == 0 {
		return nil
	}
	for _, child := range d.children {
		if found := child.find(hash, depth-1); found != nil {
			return found
		}
	}
	return nil
}
