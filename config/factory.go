package config

import (
	"bufio"
	"fmt"
	"io"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/player"
	"othello/searcher"
	"othello/searcher/agent"
)

func evaluation(name string) (game.Evaluate, error) {
	switch name {
	case "", "discs":
		return game.EvaluateDiscs, nil
	case "mobility":
		return game.EvaluateMobility, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
}

// NewAgent builds the search agent described by p. Agents collect metrics.
func (p PlayerConfig) NewAgent(seed uint64) (agent.Agent, error) {
	switch p.Kind {
	case Sampler:
		return agent.NewSamplingAgent(searcher.NewSampler(p.Goroutines,
			searcher.WithPlayouts(p.Playouts),
			searcher.WithSamplerSeed(seed),
			searcher.WithSamplerMetrics(),
		)), nil
	case MCTS, Training:
		evaluate, err := evaluation(p.Evaluation)
		if err != nil {
			return nil, err
		}
		mcts := searcher.NewMCTS(p.Goroutines,
			searcher.WithEpisodes(p.Episodes),
			searcher.WithDuration(p.Duration),
			searcher.WithCutoff(p.Cutoff),
			searcher.WithEvaluationFn(evaluate),
			searcher.WithSeed(seed),
			searcher.WithMetrics(),
		)
		if p.Kind == Training {
			return agent.NewTrainingAgent(mcts, p.Temperature, seed), nil
		}
		return agent.NewEvaluationAgent(mcts), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a search agent", ErrInvalidConfig, p.Kind)
	}
}

// NewPlayer builds the player for color. Humans read from in and prompt on out.
func (p PlayerConfig) NewPlayer(color game.Color, rules game.Rules, seed uint64, in *bufio.Scanner, out io.Writer) (player.Player, error) {
	switch p.Kind {
	case Human:
		return player.NewHuman(color, in, out), nil
	case Random:
		return player.NewRandom(color, seed), nil
	case Remote:
		return player.NewRemote(color, p.URL, rules.Name(), meta.REMOTE_TIMEOUT), nil
	default:
		a, err := p.NewAgent(seed)
		if err != nil {
			return nil, err
		}
		return agent.NewAdapter(a, color, rules), nil
	}
}

// AgentConfig is the record of p written with experiment results.
func (p PlayerConfig) AgentConfig(id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Kind:       p.Kind,
		Goroutines: p.Goroutines,
		Duration:   p.Duration,
		Episodes:   p.Episodes,
		Cutoff:     p.Cutoff,
		Playouts:   p.Playouts,
	}
}
