package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// MoveRequest asks for a move, or the legal moves, of Color on Board.
type MoveRequest struct {
	Board game.Board `json:"board"`
	Color game.Color `json:"color"`
	Rules string     `json:"rules,omitempty"`
}

type MoveResponse struct {
	Move   game.Move    `json:"move"`
	Search SearchReport `json:"search"`
}

// SearchReport is the wire form of metrics.SearchMetric.
type SearchReport struct {
	Goroutines   int   `json:"goroutines"`
	DurationMs   int64 `json:"duration_ms"`
	Episodes     int   `json:"episodes"`
	FullPlayouts int   `json:"full_playouts"`
	TreeReset    bool  `json:"tree_reset"`
}

type MovesResponse struct {
	Moves []game.Move `json:"moves"`
}

type ApplyRequest struct {
	Board game.Board `json:"board"`
	Move  game.Move  `json:"move"`
}

type ApplyResponse struct {
	Board   game.Board `json:"board"`
	Flipped int        `json:"flipped"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers move requests over HTTP with a single agent. Searches are
// serialized since an agent keeps its tree between calls.
type Server struct {
	mu     sync.Mutex
	agent  Agent
	server *http.Server
}

func NewServer(agent Agent, addr string) *Server {
	s := &Server{agent: agent}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)
	r.Post("/moves", s.handleMoves)
	r.Post("/apply", s.handleApply)
	return r
}

// Listen serves until Close is called.
func (s *Server) Listen() error {
	log.Info().Msgf("agent server listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("agent server: %w", err)
	}
	return nil
}

func (s *Server) Close(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed, closing agent server")
		return s.server.Close()
	}
	return nil
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"bad request: " + err.Error()})
		return
	}
	state, err := newState(payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}
	if state.Over() || state.Player() != payload.Color {
		writeJSON(w, http.StatusConflict, errorResponse{fmt.Sprintf("%s has no legal move", payload.Color)})
		return
	}

	s.mu.Lock()
	move, metric := s.agent.FindMove(state)
	s.mu.Unlock()

	log.Debug().Msgf("agent chose %s after %d episodes", move, metric.Episodes)
	writeJSON(w, http.StatusOK, MoveResponse{Move: move, Search: report(metric)})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	var payload MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"bad request: " + err.Error()})
		return
	}
	if !payload.Color.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{game.ErrInvalidColor.Error()})
		return
	}
	moves := game.ValidMoves(payload.Board, payload.Color)
	if moves == nil {
		moves = []game.Move{}
	}
	writeJSON(w, http.StatusOK, MovesResponse{Moves: moves})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var payload ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{"bad request: " + err.Error()})
		return
	}
	board, err := payload.Board.ApplyMove(payload.Move)
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApplyResponse{Board: board, Flipped: len(payload.Board.Flips(payload.Move))})
}

func newState(payload MoveRequest) (*game.GameState, error) {
	if !payload.Color.Valid() {
		return nil, game.ErrInvalidColor
	}
	rules, err := game.RulesByName(payload.Rules)
	if err != nil {
		return nil, err
	}
	return game.NewGameState(payload.Board, payload.Color, rules), nil
}

func report(metric metrics.SearchMetric) SearchReport {
	return SearchReport{
		Goroutines:   metric.Goroutines,
		DurationMs:   metric.Duration.Milliseconds(),
		Episodes:     metric.Episodes,
		FullPlayouts: metric.FullPlayouts,
		TreeReset:    metric.IsTreeReset,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("handled request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
