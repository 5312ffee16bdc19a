package searcher

import (
	"othello/game"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Tests parallel MCTS (tree parallelization with virtual loss) on decision nodes
sequential:
- selection: fully expanded node -> max UCT child + loss, child state
- expansion: expandable node -> new added child + loss, child state
- edge case: terminal node -> same node, same state
- backup: reverse loss, visits++, reward from the mover's perspective
concurrent: 3 race conditions
- shared expansion
- shared backup
- shared selection + backup
*/

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting fully expanded node", func(t *testing.T) {
		maxMove := game.NewMove(game.First, 1, 1)
		maxChild := &decision{mover: game.First, rewards: 1, visits: 1}
		otherChild := &decision{mover: game.First, rewards: 0, visits: 1}
		node := &decision{
			explored: []game.Move{game.NewMove(game.First, 0, 0), maxMove},
			children: []*decision{otherChild, maxChild},
			rewards:  1,
			visits:   2,
		}
		state := mockState{player: game.First}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, maxChild, gotChild, "Node should select child with max UCT value")
		require.Equal(t, 1+LOSS, gotChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Move{maxMove}, gotState.(mockState).played, "State should update by the move to the max UCT child")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("selecting the less visited child when rewards tie", func(t *testing.T) {
		lessVisited := &decision{rewards: 1, visits: 2}
		moreVisited := &decision{rewards: 2, visits: 4}
		node := &decision{
			explored: []game.Move{moveA, moveB},
			children: []*decision{moreVisited, lessVisited},
		}

		gotChild, _, _ := node.SelectOrExpand(mockState{})

		require.Equal(t, lessVisited, gotChild, "Exploration term should favor fewer visits")
	})

	t.Run("expanding node with unexplored moves", func(t *testing.T) {
		unexploredMove := game.NewMove(game.First, 2, 0)
		node := &decision{
			unexplored: []game.Move{unexploredMove},
			explored:   []game.Move{moveA},
			children:   []*decision{{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{player: game.First}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, LOSS, gotChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, gotChild.visits, "Child should apply a temporary loss")
		require.Equal(t, game.First, gotChild.mover, "Child should record who moved into it")
		require.Equal(t, node, gotChild.parent)
		require.Equal(t, 2, len(node.children), "Node should add a new child")
		require.Empty(t, node.unexplored, "Node should consume the unexplored move")
		require.Equal(t, []game.Move{unexploredMove}, gotState.(mockState).played, "State should update by the move to the unexplored child")
		require.False(t, gotSelected, "Node should perform expansion")
	})

	t.Run("stagnating on terminal node", func(t *testing.T) {
		node := &decision{}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, node, gotChild, "Should return the same node")
		require.Equal(t, mockState{}, gotState, "Should return the same state")
		require.False(t, gotSelected, "Should not select any child or expand")
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("recording on root node", func(t *testing.T) {
		node := &decision{}

		got := node.Backup(game.First, WIN)

		require.Nil(t, got, "Should return no parent")
		require.Equal(t, 1.0, node.visits, "Should add a visit")
	})

	t.Run("recording win", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			mover:   game.First,
			rewards: LOSS,
			visits:  1,
		}

		got := node.Backup(game.First, WIN)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, WIN, node.rewards, "Should reverse virtual loss and add a win")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording loss", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			mover:   game.First,
			rewards: LOSS,
			visits:  1,
		}

		got := node.Backup(game.Second, WIN)

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, LOSS, node.rewards, "Should reverse virtual loss and add a loss")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording draw", func(t *testing.T) {
		node := &decision{parent: &decision{}, mover: game.Second, visits: 1}

		node.Backup(game.First, DRAW)

		require.Equal(t, DRAW, node.rewards, "A draw is worth the same to both players")
	})

	t.Run("recording evaluation for the opponent", func(t *testing.T) {
		node := &decision{parent: &decision{}, mover: game.Second, visits: 1}

		node.Backup(game.First, 0.8)

		require.InDelta(t, 0.2, node.rewards, 1e-9, "Opponent should receive the complement")
	})
}

func TestDecisionPolicy(t *testing.T) {
	node := &decision{
		explored: []game.Move{moveA, moveB},
		children: []*decision{{visits: 3}, {visits: 1}},
	}

	policy := node.Policy()

	require.Equal(t, Policy{{Move: moveA, Share: 0.75}, {Move: moveB, Share: 0.25}}, policy)
	best, ok := policy.Best()
	require.True(t, ok)
	require.Equal(t, moveA, best)

	_, ok = Policy{}.Best()
	require.False(t, ok, "Empty policy has no best move")
}

func TestDecisionFind(t *testing.T) {
	grandChild := &decision{hash: 3}
	child := &decision{hash: 2, children: []*decision{grandChild}}
	root := &decision{hash: 1, children: []*decision{child}}

	require.Equal(t, root, root.find(1, 2))
	require.Equal(t, grandChild, root.find(3, 2))
	require.Nil(t, root.find(3, 1), "Search should stop at the depth limit")
	require.Nil(t, root.find(4, 2))
}

func TestDecisionRaceConditions(t *testing.T) {
	t.Run("concurrent expansion", func(t *testing.T) {
		node := &decision{
			unexplored: []game.Move{moveA, moveB},
		}

		var wg sync.WaitGroup
		type result struct {
			child    *decision
			state    mockState
			selected bool
		}
		var got [2]result

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				gotChild, gotState, gotSelected := node.SelectOrExpand(mockState{player: game.First})
				got[i] = result{gotChild, gotState.(mockState), gotSelected}
			}(i)
		}
		wg.Wait()

		require.Equal(t, 2, len(node.children), "Node should have two children")
		for i := 0; i < 2; i++ {
			require.Equal(t, 1.0, got[i].child.visits, "Child should apply a temporary loss")
			require.False(t, got[i].selected, "Node should be expanded")
			require.Contains(t, []game.Move{moveA, moveB}, got[i].state.played[0], "Node should expand with a legal move")
		}
		require.NotEqual(t, got[0].state.played[0], got[1].state.played[0], "Node should expand with different moves")
	})

	t.Run("concurrent backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			mover:   game.First,
			rewards: LOSS * 2, // 2 virtual losses
			visits:  2,
		}

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				node.Backup(game.First, WIN)
			}()
		}
		wg.Wait()

		require.Equal(t, WIN*2, node.rewards, "Node should reverse virtual losses and add two wins")
		require.Equal(t, 2.0, node.visits, "Node should reverse virtual losses and add two visits")
	})

	t.Run("concurrent selection and backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			mover:   game.First,
			rewards: LOSS,
			visits:  3,
		}
		child := &decision{parent: node, visits: 1}
		node.explored = []game.Move{moveA}
		node.children = []*decision{child}

		var wg sync.WaitGroup
		wg.Add(2)
		var selected *decision
		go func() {
			defer wg.Done()
			selected, _, _ = node.SelectOrExpand(mockState{})
		}()
		go func() {
			defer wg.Done()
			node.Backup(game.First, WIN)
		}()
		wg.Wait()

		require.Equal(t, child, selected, "Node should select the child")
		require.Equal(t, 2.0, child.visits, "Child should apply a temporary loss")
		require.Equal(t, WIN, node.rewards, "Node should reverse virtual loss and add a win")
		require.Equal(t, 3.0, node.visits, "Node should reverse virtual loss and add a visit")
	})
}
