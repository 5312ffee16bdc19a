package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/game"
	"othello/player"
	"othello/searcher/agent"
	"othello/ui"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "play", "play, serve or experiment")
	black := flag.String("black", "", "Kind of the black player: human, random, sampler, mcts, training or remote")
	white := flag.String("white", "", "Kind of the white player")
	rules := flag.String("rules", "", "forfeit or standard")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	addr := flag.String("addr", "", "Agent server address")
	logLevel := flag.String("log-level", "info", "Log level")
	pretty := flag.Bool("pretty", false, "Human-readable logs")
	flag.Parse()

	setupLogging(*logLevel, *pretty)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	// Flags override the file
	if *black != "" {
		cfg.Black.Kind = *black
	}
	if *white != "" {
		cfg.White.Kind = *white
	}
	if *rules != "" {
		cfg.Rules = *rules
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	switch *mode {
	case "play":
		err = play(cfg)
	case "serve":
		err = serve(cfg)
	case "experiment":
		err = experiment(cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", *mode)
		os.Exit(1)
	}
}

func setupLogging(level string, pretty bool) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        colorable.NewColorableStderr(),
			TimeFormat: time.TimeOnly,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}
	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func play(cfg config.Config) error {
	rules, err := game.RulesByName(cfg.Rules)
	if err != nil {
		return err
	}
	blackSeed, whiteSeed := cfg.Seed, cfg.Seed
	if cfg.Seed != 0 {
		whiteSeed++
	}
	in := bufio.NewScanner(os.Stdin)
	blackPlayer, err := cfg.Black.NewPlayer(game.First, rules, blackSeed, in, os.Stdout)
	if err != nil {
		return err
	}
	whitePlayer, err := cfg.White.NewPlayer(game.Second, rules, whiteSeed, in, os.Stdout)
	if err != nil {
		return err
	}

	colors := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	console := ui.NewConsole(colorable.NewColorableStdout(), ui.WithColors(colors), ui.WithDelay(cfg.MoveDelay))

	e := engine.LocalEngine(console, []player.Player{blackPlayer, whitePlayer}, rules,
		engine.WithStartingPlayer(cfg.Starting))
	_, err = e.Run()
	return err
}

func serve(cfg config.Config) error {
	a, err := cfg.Server.Agent.NewAgent(cfg.Seed)
	if err != nil {
		return err
	}
	server := agent.NewServer(a, cfg.Server.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down agent server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Close(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func experiment(cfg config.Config) error {
	summary, err := experiments.Run(cfg)
	if err != nil {
		return err
	}
	log.Info().Msgf("played %d games (%d draws), wins per agent: %v; records in %s", summary.Games, summary.Draws, summary.Wins, summary.Dir)
	return nil
}
