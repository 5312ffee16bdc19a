package ui

import (
	"othello/game"
	"othello/player"
)

// UI observes a game as the engine plays it.
type UI interface {
	BeforeMove(p player.Player, board game.Board)
	AfterMove(p player.Player, board game.Board)
	// Pass is called when color has no legal move and the turn goes to
	// the opponent.
	Pass(color game.Color)
	// GameOver receives the final board before the result is announced.
	GameOver(board game.Board)
	AnnounceWinner(color game.Color)
	AnnounceDraw()
}

// Silent ignores every event. Experiments and tests use it.
type Silent struct{}

func (Silent) BeforeMove(player.Player, game.Board) {}
func (Silent) AfterMove(player.Player, game.Board)  {}
func (Silent) Pass(game.Color)                      {}
func (Silent) GameOver(game.Board)                  {}
func (Silent) AnnounceWinner(game.Color)            {}
func (Silent) AnnounceDraw()                        {}
