package passage

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// ErrNoRooms is returned when a session is given an empty room sequence.
var ErrNoRooms = errors.New("passage: room sequence is empty")

// Session sequences the rooms of one run. It is either in a room, showing
// the secret reveal overlay, or showing the victory overlay. Gameplay time
// only advances while no overlay is shown.
type Session struct {
	cfg    config.PassageConfig
	defs   []levels.Definition
	next   []levels.Definition // Replacement sequence, applied on the next room entry
	player *Player
	room   *Room
	index  int
	rng    *rand.Rand

	overlay     core.Overlay
	overlayTime float64 // Seconds spent in the current overlay
	secretFired bool    // Secret already triggered during this room visit
	code        string

	elapsed float64
	falls   int
	secrets int
}

// NewSession validates defs and starts a run in the first room.
func NewSession(cfg config.PassageConfig, defs []levels.Definition, seed int64) (*Session, error) {
	if err := checkRooms(cfg, defs); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		defs:   defs,
		player: NewPlayer(cfg),
	}
	s.Reset(seed)
	return s, nil
}

func checkRooms(cfg config.PassageConfig, defs []levels.Definition) error {
	if len(defs) == 0 {
		return ErrNoRooms
	}
	if err := levels.ValidateAll(defs, cfg.Player.Width, cfg.Player.Height); err != nil {
		return fmt.Errorf("passage: invalid rooms: %w", err)
	}
	return nil
}

// Reset starts a new run in the first room with a reseeded code generator.
func (s *Session) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.restart()
}

// SetRooms replaces the room sequence. The current room keeps running with
// its old geometry; the new sequence takes effect on the next room entry.
func (s *Session) SetRooms(defs []levels.Definition) error {
	if err := checkRooms(s.cfg, defs); err != nil {
		return err
	}
	s.next = defs
	return nil
}

// Step advances the session by dt seconds and returns what happened, in
// order. dt is capped at the configured maximum frame time; a non-positive
// dt does nothing.
func (s *Session) Step(dt float64, in core.InputFrame) []core.Event {
	if dt <= 0 {
		return nil
	}
	if dt > s.cfg.Timing.MaxFrame {
		dt = s.cfg.Timing.MaxFrame
	}

	switch s.overlay {
	case core.OverlaySecretReveal:
		s.overlayTime += dt
		if in.Has(core.ActionCancel) || s.overlayTime >= s.cfg.Timing.RevealSeconds {
			s.overlay = core.OverlayNone
			s.overlayTime = 0
			return []core.Event{{Kind: core.EventRevealClosed, Room: s.room.ID()}}
		}
		return nil

	case core.OverlayVictory:
		if in.Has(core.ActionRestart) {
			s.restart()
			return []core.Event{
				{Kind: core.EventRestart},
				{Kind: core.EventRoomEntered, Room: s.room.ID()},
			}
		}
		return nil
	}

	var events []core.Event
	s.elapsed += dt
	if s.room.Update(dt, in) {
		s.falls++
		events = append(events, core.Event{Kind: core.EventRespawn, Room: s.room.ID()})
	}

	switch {
	case s.room.ReachedGoal():
		events = append(events, s.advance()...)
	case !s.secretFired && s.room.EnteredSecret():
		s.secretFired = true
		s.secrets++
		s.code = newAccessCode(s.rng, s.cfg.Reveal.CodeLength)
		s.overlay = core.OverlaySecretReveal
		s.overlayTime = 0
		events = append(events, core.Event{Kind: core.EventSecretFound, Room: s.room.ID(), Code: s.code})
	}
	return events
}

// advance moves to the next room, or to victory after the last one.
func (s *Session) advance() []core.Event {
	cleared := s.room.ID()
	s.applyNext()
	if s.index+1 < len(s.defs) {
		s.enter(s.index + 1)
		return []core.Event{{Kind: core.EventRoomEntered, Room: s.room.ID()}}
	}
	s.overlay = core.OverlayVictory
	return []core.Event{{Kind: core.EventVictory, Room: cleared}}
}

func (s *Session) restart() {
	s.applyNext()
	s.overlay = core.OverlayNone
	s.overlayTime = 0
	s.code = ""
	s.elapsed = 0
	s.falls = 0
	s.secrets = 0
	s.enter(0)
}

func (s *Session) applyNext() {
	if s.next == nil {
		return
	}
	s.defs = s.next
	s.next = nil
}

// enter builds room i fresh and places the player on its spawn point.
func (s *Session) enter(i int) {
	s.index = i
	s.room = NewRoom(s.defs[i], s.player)
	s.room.Enter()
	s.secretFired = false
}

// State returns a snapshot of the session.
func (s *Session) State() core.GameState {
	return core.GameState{
		Room:     s.index,
		RoomID:   s.room.ID(),
		Overlay:  s.overlay,
		Elapsed:  s.elapsed,
		Falls:    s.falls,
		Secrets:  s.secrets,
		Finished: s.overlay == core.OverlayVictory,
	}
}

// Overlay returns the overlay currently shown.
func (s *Session) Overlay() core.Overlay { return s.overlay }

// OverlayRemaining returns the seconds left before the reveal overlay
// closes by itself, or 0 when it is not shown.
func (s *Session) OverlayRemaining() float64 {
	if s.overlay != core.OverlaySecretReveal {
		return 0
	}
	return max(0, s.cfg.Timing.RevealSeconds-s.overlayTime)
}

// AccessCode returns the code generated by the most recent secret.
func (s *Session) AccessCode() string { return s.code }

// ActiveRoom returns the room being played or shown behind an overlay.
func (s *Session) ActiveRoom() *Room { return s.room }

// Player returns the shared player body.
func (s *Session) Player() *Player { return s.player }

// RoomCount returns the length of the current room sequence.
func (s *Session) RoomCount() int { return len(s.defs) }
