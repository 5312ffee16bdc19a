package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"othello/game"
	"time"
)

// Remote asks an agent server for its moves.
type Remote struct {
	color  game.Color
	url    string
	rules  string
	client *http.Client
}

func NewRemote(color game.Color, url string, rules string, timeout time.Duration) *Remote {
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color for player: %v", color))
	}
	return &Remote{
		color:  color,
		url:    url,
		rules:  rules,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *Remote) Color() game.Color {
	return p.color
}

func (p *Remote) NextMove(board game.Board) (game.Move, error) {
	return p.nextMove(context.Background(), board)
}

func (p *Remote) nextMove(ctx context.Context, board game.Board) (game.Move, error) {
	payload := struct {
		Board game.Board `json:"board"`
		Color game.Color `json:"color"`
		Rules string     `json:"rules,omitempty"`
	}{
		Board: board,
		Color: p.color,
		Rules: p.rules,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return game.Move{}, fmt.Errorf("encoding move request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.Move{}, fmt.Errorf("creating move request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return game.Move{}, fmt.Errorf("requesting move from %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var answer struct {
		Move game.Move `json:"move"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return game.Move{}, fmt.Errorf("decoding move: %w", err)
	}
	return answer.Move, nil
}
