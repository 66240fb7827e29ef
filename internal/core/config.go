package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for access codes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Overlay names the full-screen overlay that is currently shown, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlaySecretReveal
	OverlayVictory
)

// String returns a human-readable name for the overlay.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlaySecretReveal:
		return "secret-reveal"
	case OverlayVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// GameState represents the current state of the game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Room     int     // Index of the active room
	RoomID   string  // ID of the active room
	Overlay  Overlay // Overlay being shown
	Elapsed  float64 // Gameplay seconds since the run started (frozen under overlays)
	Falls    int     // Times the player fell out of the world this run
	Secrets  int     // Secret triggers fired this run
	Finished bool    // Victory reached
}

// EventKind identifies something noteworthy that happened during a tick.
type EventKind int

const (
	EventRoomEntered EventKind = iota
	EventRespawn
	EventSecretFound
	EventRevealClosed
	EventVictory
	EventRestart
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRoomEntered:
		return "room-entered"
	case EventRespawn:
		return "respawn"
	case EventSecretFound:
		return "secret-found"
	case EventRevealClosed:
		return "reveal-closed"
	case EventVictory:
		return "victory"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation; the platform reacts to it
// (logging, persistence, the reveal side effect).
type Event struct {
	Kind EventKind
	Room string // Room ID the event relates to
	Code string // Access code, only for EventSecretFound
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred, in order.
type StepResult struct {
	State  GameState
	Events []Event
}
