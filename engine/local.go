package engine

import (
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/player"
	"othello/ui"
	"othello/utils"
	"time"

	"github.com/rs/zerolog/log"
)

// searchReporter is implemented by players backed by a search agent.
type searchReporter interface {
	LastSearch() metrics.SearchMetric
}

type Local struct {
	ui       ui.UI
	players  map[game.Color]player.Player
	rules    game.Rules
	board    game.Board
	starting game.Color
	maxTurns int
}

type Option func(e *Local)

// WithBoard starts the game from board instead of the opening position.
func WithBoard(board game.Board) Option {
	return func(e *Local) {
		e.board = board
	}
}

func WithStartingPlayer(color game.Color) Option {
	return func(e *Local) {
		if color.Valid() {
			e.starting = color
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// LocalEngine sets up a game between two players of different colors.
func LocalEngine(u ui.UI, players []player.Player, rules game.Rules, options ...Option) *Local {
	if len(players) != 2 {
		panic("need exactly two players")
	}
	byColor := make(map[game.Color]player.Player, len(players))
	for _, p := range players {
		if !p.Color().Valid() {
			panic(fmt.Sprintf("player has invalid color %v", p.Color()))
		}
		byColor[p.Color()] = p
	}
	if len(byColor) != 2 {
		panic("players must have different colors")
	}
	if rules == nil {
		rules = game.NewForfeitRules()
	}

	e := &Local{ // Default values
		ui:       u,
		players:  byColor,
		rules:    rules,
		board:    game.NewBoard(),
		starting: game.Second,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (Result, error) {
	state := game.NewGameState(e.board, e.starting, e.rules)
	gameMetric := metrics.GameMetric{StartingPlayer: e.starting, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting with %s rules", e.starting, e.rules.Name())
	if state.Passed != 0 {
		e.ui.Pass(state.Passed)
		gameMetric.Passes++
	}

	turn := 1
	for !state.Over() && turn <= e.maxTurns {
		color := state.Player()
		p := e.players[color]

		e.ui.BeforeMove(p, state.Board)
		move, err := p.NextMove(state.Board)
		if err != nil {
			return Result{}, fmt.Errorf("%s failed to move on turn %d: %w", color, turn, err)
		}

		legal := state.LegalMoves()
		if utils.FindIndex(legal, move) < 0 {
			log.Warn().Msgf("%s chose illegal move %s, playing %s instead", color, move, legal[0])
			move = legal[0]
		}
		log.Debug().Msgf("turn %d: %s", turn, move)

		moveMetric := metrics.MoveMetric{Step: turn, Player: color, Move: move}
		if reporter, ok := p.(searchReporter); ok {
			moveMetric.SearchMetric = reporter.LastSearch()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		state, err = state.Apply(move)
		if err != nil {
			return Result{}, fmt.Errorf("applying %s: %w", move, err)
		}
		e.ui.AfterMove(p, state.Board)

		if state.Passed != 0 {
			log.Debug().Msgf("%s passes", state.Passed)
			e.ui.Pass(state.Passed)
			gameMetric.Passes++
		}
		turn++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	result := Result{Board: state.Board, Game: gameMetric, Moves: moveMetrics}

	if !state.Over() {
		log.Warn().Msgf("stopped after %d turns without a result", e.maxTurns)
		return result, fmt.Errorf("after %d turns: %w", e.maxTurns, ErrTurnLimit)
	}

	result.Winner = state.Winner()
	result.Draw = state.Outcome.Draw()
	result.Game.Winner = result.Winner
	e.ui.GameOver(state.Board)
	if result.Draw {
		log.Info().Msgf("game ended in a draw after %d moves", result.Game.TotalMoves)
		e.ui.AnnounceDraw()
	} else {
		log.Info().Msgf("game ended with winner %s after %d moves", result.Winner, result.Game.TotalMoves)
		e.ui.AnnounceWinner(result.Winner)
	}
	return result, nil
}
