package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// GameState is a board, the color to move and the rules used to settle
// positions where that color is stuck. It is never modified after creation.
type GameState struct {
	Board   Board
	Turn    Color
	Rules   Rules
	Outcome Outcome
	// Passed is set when the previous player to move had to pass.
	Passed Color
}

// NewGameState starts a game on board with turn to move.
func NewGameState(board Board, turn Color, rules Rules) *GameState {
	if !turn.Valid() {
		panic(fmt.Sprintf("invalid color to move: %v", turn))
	}
	if rules == nil {
		rules = NewForfeitRules()
	}
	return settle(board, turn, rules)
}

// settle hands the turn to the rules when turn has no legal move.
func settle(board Board, turn Color, rules Rules) *GameState {
	gs := &GameState{Board: board, Turn: turn, Rules: rules}
	if HasValidMove(board, turn) {
		return gs
	}
	next, outcome := rules.Resolve(board, turn)
	if !outcome.Over && next != turn {
		gs.Passed = turn
	}
	gs.Turn = next
	gs.Outcome = outcome
	return gs
}

// Player returns the color to move.
func (gs GameState) Player() Color {
	return gs.Turn
}

// LegalMoves returns all legal moves for the current player, none once the
// game is over.
func (gs GameState) LegalMoves() []Move {
	if gs.Outcome.Over {
		return nil
	}
	return ValidMoves(gs.Board, gs.Turn)
}

// Over reports whether the game has ended.
func (gs GameState) Over() bool {
	return gs.Outcome.Over
}

func (gs GameState) Winner() Color {
	return gs.Outcome.Winner
}

// Play applies a legal move and passes the turn. It panics on an illegal
// move; use Apply when the move comes from outside the search.
func (gs GameState) Play(move Move) State {
	next, err := gs.Apply(move)
	if err != nil {
		panic(err)
	}
	return next
}

// Apply is Play with an error instead of a panic.
func (gs GameState) Apply(move Move) (*GameState, error) {
	if gs.Outcome.Over {
		return nil, fmt.Errorf("%s: game is over: %w", move, ErrInvalidMove)
	}
	if move.Color != gs.Turn {
		return nil, fmt.Errorf("%s: %s to move: %w", move, gs.Turn, ErrInvalidMove)
	}
	board, err := gs.Board.ApplyMove(move)
	if err != nil {
		return nil, err
	}
	return settle(board, gs.Turn.Opponent(), gs.Rules), nil
}

func (gs GameState) Hash() StateHash {
	h := fnv.New64a()
	var buf [Size * Size]byte
	for i, p := range positions {
		buf[i] = byte(gs.Board.at(p))
	}
	h.Write(buf[:])
	binary.Write(h, binary.LittleEndian, uint8(gs.Turn))
	return StateHash(h.Sum64())
}
