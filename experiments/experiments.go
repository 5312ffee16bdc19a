package experiments

import (
	"fmt"
	"othello/config"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/player"
	"othello/ui"

	"github.com/rs/zerolog/log"
)

// Summary counts the results of an experiment per agent ID.
type Summary struct {
	Dir   string
	Games int
	Wins  map[int]int
	Draws int
}

// Run plays every matchup of cfg.Experiment, the baseline (ID 0) against each
// challenger (IDs from 1), alternating colors between games, and writes the
// records as CSV.
func Run(cfg config.Config) (Summary, error) {
	exp := cfg.Experiment
	rules, err := game.RulesByName(cfg.Rules)
	if err != nil {
		return Summary{}, err
	}

	configs := []metrics.AgentConfig{exp.Baseline.AgentConfig(0)}
	for i, challenger := range exp.Challengers {
		configs = append(configs, challenger.AgentConfig(i+1))
	}

	// Run a number of games for each matchup
	count := 0
	summary := Summary{Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, challenger := range exp.Challengers {
		log.Info().Msgf("starting matchup %d of %d between baseline=%+v and challenger=%+v...", mi+1, len(exp.Challengers), exp.Baseline, challenger)

		for i := 0; i < exp.Games; i++ {
			// Alternate the starting agent
			black, white := exp.Baseline, challenger
			blackID, whiteID := 0, mi+1
			if i%2 == 1 {
				black, white = white, black
				blackID, whiteID = whiteID, blackID
			}

			count++
			result, err := runGame(cfg, rules, black, white, seedFor(cfg.Seed, count))
			if err != nil {
				return Summary{}, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     blackID,
				Agent2:     whiteID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			switch {
			case result.Draw:
				summary.Draws++
				log.Info().Msgf("completed matchup %d of %d game %d in a draw", mi+1, len(exp.Challengers), i+1)
			case result.Winner == game.First:
				summary.Wins[blackID]++
				log.Info().Msgf("completed matchup %d of %d game %d with winner: agent %d", mi+1, len(exp.Challengers), i+1, blackID)
			default:
				summary.Wins[whiteID]++
				log.Info().Msgf("completed matchup %d of %d game %d with winner: agent %d", mi+1, len(exp.Challengers), i+1, whiteID)
			}
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.Challengers))
	}
	summary.Games = count

	log.Info().Msgf("completed %s experiment", exp.Name)

	dir, err := store(exp, configs, gameRecords, moveRecords)
	if err != nil {
		return Summary{}, err
	}
	summary.Dir = dir
	return summary, nil
}

// store writes experiment metadata and results
func store(exp config.ExperimentConfig, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(exp.Dir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(cfg config.Config, rules game.Rules, black, white config.PlayerConfig, seed uint64) (engine.Result, error) {
	blackPlayer, err := black.NewPlayer(game.First, rules, seed, nil, nil)
	if err != nil {
		return engine.Result{}, err
	}
	whiteSeed := seed
	if seed != 0 {
		whiteSeed++
	}
	whitePlayer, err := white.NewPlayer(game.Second, rules, whiteSeed, nil, nil)
	if err != nil {
		return engine.Result{}, err
	}

	e := engine.LocalEngine(ui.Silent{}, []player.Player{blackPlayer, whitePlayer}, rules,
		engine.WithStartingPlayer(cfg.Starting))
	return e.Run()
}

// seedFor derives per-game seeds; 0 keeps agents time-seeded.
func seedFor(seed uint64, n int) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + 2*uint64(n)
}
