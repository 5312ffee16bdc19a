package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"othello/game"
	"othello/meta"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Player kinds.
const (
	Human    = "human"
	Random   = "random"
	Sampler  = "sampler"
	MCTS     = "mcts"
	Training = "training"
	Remote   = "remote"
)

// PlayerConfig describes one side of a game. Search settings only apply to
// the kinds that search.
type PlayerConfig struct {
	Kind        string        `yaml:"kind"`
	Goroutines  int           `yaml:"goroutines,omitempty"`
	Episodes    int           `yaml:"episodes,omitempty"`
	Duration    time.Duration `yaml:"duration,omitempty"`
	Cutoff      int           `yaml:"cutoff,omitempty"`
	Playouts    int           `yaml:"playouts,omitempty"`
	Evaluation  string        `yaml:"evaluation,omitempty"` // discs or mobility
	Temperature float64       `yaml:"temperature,omitempty"`
	URL         string        `yaml:"url,omitempty"`
}

type ServerConfig struct {
	Addr  string       `yaml:"addr"`
	Agent PlayerConfig `yaml:"agent"`
}

// ExperimentConfig pairs a baseline agent against each challenger.
type ExperimentConfig struct {
	Name        string         `yaml:"name"`
	Games       int            `yaml:"games"`
	Dir         string         `yaml:"dir"`
	Baseline    PlayerConfig   `yaml:"baseline"`
	Challengers []PlayerConfig `yaml:"challengers"`
}

type Config struct {
	Rules      string           `yaml:"rules"`
	Starting   game.Color       `yaml:"starting"`
	Seed       uint64           `yaml:"seed"`
	MoveDelay  time.Duration    `yaml:"move_delay"`
	Black      PlayerConfig     `yaml:"black"`
	White      PlayerConfig     `yaml:"white"`
	Server     ServerConfig     `yaml:"server"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

// Default returns the console game between a sampling agent and a random
// player, with the search budgets from meta.
func Default() Config {
	return Config{
		Rules:     game.ForfeitRules{}.Name(),
		Starting:  game.Second,
		MoveDelay: meta.MOVE_DELAY,
		Black:     PlayerConfig{Kind: Sampler, Goroutines: meta.GO_ROUTINES, Playouts: meta.PLAYOUTS},
		White:     PlayerConfig{Kind: Random},
		Server: ServerConfig{
			Addr:  meta.SERVER_ADDR,
			Agent: PlayerConfig{Kind: MCTS, Goroutines: meta.GO_ROUTINES, Episodes: meta.EPISODES, Cutoff: meta.WITH_CUTOFF},
		},
		Experiment: ExperimentConfig{
			Name:     "parallelization",
			Games:    meta.EXPERIMENT_GAMES,
			Dir:      meta.EXPERIMENT_DIR,
			Baseline: PlayerConfig{Kind: MCTS, Goroutines: 1, Duration: 10 * time.Millisecond},
			Challengers: []PlayerConfig{
				{Kind: MCTS, Goroutines: 4, Duration: 10 * time.Millisecond},
				{Kind: MCTS, Goroutines: meta.GO_ROUTINES, Duration: 10 * time.Millisecond},
				{Kind: Sampler, Goroutines: meta.GO_ROUTINES, Playouts: meta.PLAYOUTS},
			},
		},
	}
}

// Load overlays the YAML file at path on the defaults. Unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := game.RulesByName(c.Rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !c.Starting.Valid() {
		return fmt.Errorf("%w: starting color must be black or white", ErrInvalidConfig)
	}
	if c.MoveDelay < 0 {
		return fmt.Errorf("%w: negative move delay", ErrInvalidConfig)
	}
	if err := c.Black.validate("black"); err != nil {
		return err
	}
	if err := c.White.validate("white"); err != nil {
		return err
	}
	if c.Server.Agent.Kind == Human || c.Server.Agent.Kind == Remote {
		return fmt.Errorf("%w: server agent cannot be %s", ErrInvalidConfig, c.Server.Agent.Kind)
	}
	if err := c.Server.Agent.validate("server agent"); err != nil {
		return err
	}
	return c.Experiment.validate()
}

func (e ExperimentConfig) validate() error {
	if e.Games <= 0 {
		return fmt.Errorf("%w: experiment needs at least one game per matchup", ErrInvalidConfig)
	}
	if len(e.Challengers) == 0 {
		return fmt.Errorf("%w: experiment needs a challenger", ErrInvalidConfig)
	}
	for i, p := range append([]PlayerConfig{e.Baseline}, e.Challengers...) {
		if p.Kind == Human || p.Kind == Remote {
			return fmt.Errorf("%w: experiment agent %d cannot be %s", ErrInvalidConfig, i, p.Kind)
		}
		if err := p.validate(fmt.Sprintf("experiment agent %d", i)); err != nil {
			return err
		}
	}
	return nil
}

func (p PlayerConfig) validate(name string) error {
	switch p.Kind {
	case Human, Random:
	case Remote:
		if p.URL == "" {
			return fmt.Errorf("%w: %s: remote player needs a url", ErrInvalidConfig, name)
		}
	case Sampler:
		if p.Goroutines <= 0 {
			return fmt.Errorf("%w: %s: needs goroutines", ErrInvalidConfig, name)
		}
	case MCTS, Training:
		if p.Goroutines <= 0 {
			return fmt.Errorf("%w: %s: needs goroutines", ErrInvalidConfig, name)
		}
		if p.Episodes <= 0 && p.Duration <= 0 {
			return fmt.Errorf("%w: %s: needs episodes or duration", ErrInvalidConfig, name)
		}
		if p.Kind == Training && p.Temperature <= 0 {
			return fmt.Errorf("%w: %s: needs a positive temperature", ErrInvalidConfig, name)
		}
		if _, err := evaluation(p.Evaluation); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	default:
		return fmt.Errorf("%w: %s: unknown player kind %q", ErrInvalidConfig, name, p.Kind)
	}
	return nil
}
