// Package passage implements the secret passage platformer: a player body
// under gravity, static and patrolling platforms, rooms with a goal and a
// hidden secret trigger, and the session that sequences rooms and overlays.
//
// The simulation performs no I/O. Everything the outside world should react
// to (the secret being found, victory) is returned as core.Event values.
package passage

import (
	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// Game adapts a Session to the platform's tick/render loop.
type Game struct {
	cfg     config.PassageConfig
	session *Session
	runtime core.RuntimeConfig
	frame   int // Render frames, drives ambient animation only
}

// New creates a game over the given room sequence.
func New(cfg config.PassageConfig, defs []levels.Definition) (*Game, error) {
	session, err := NewSession(cfg, defs, 0)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		session: session,
		runtime: core.DefaultConfig(),
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "passage"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Secret Passage"
}

// Reset starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.frame = 0
	g.session.Reset(cfg.Seed)
}

// Step advances the game by dt seconds.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	events := g.session.Step(dt, in)
	return core.StepResult{State: g.session.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.State()
}

// SetRooms swaps in a new room sequence from the next room entry on.
func (g *Game) SetRooms(defs []levels.Definition) error {
	return g.session.SetRooms(defs)
}

// Session exposes the underlying session for read-only queries.
func (g *Game) Session() *Session {
	return g.session
}
