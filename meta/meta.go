// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the rollout cutoff for MCTS; 0 plays rollouts to the end.
const WITH_CUTOFF = 0

// PLAYOUTS defines the number of random games per move for the sampler.
const PLAYOUTS = 10

// MAX_TURNS bounds the engine loop. A game has at most 60 moves.
const MAX_TURNS = 100

// MOVE_DELAY is the console pause after each move.
const MOVE_DELAY = 100 * time.Millisecond

// SERVER_ADDR is where the agent server listens.
const SERVER_ADDR = ":8080"

// REMOTE_TIMEOUT bounds a move request to an agent server.
const REMOTE_TIMEOUT = 30 * time.Second

// EXPERIMENT_GAMES defines the number of games per matchup.
const EXPERIMENT_GAMES = 10

// EXPERIMENT_DIR is where experiment records are written.
const EXPERIMENT_DIR = "results"
