// Package config provides YAML-based tuning configuration for the
// platformer: physics constants, world bounds, timing and the reveal
// side effect.
package config

import "fmt"

// PassageConfig contains all tuning for the game.
type PassageConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	World   WorldConfig   `yaml:"world"`
	Timing  TimingConfig  `yaml:"timing"`
	Input   InputConfig   `yaml:"input"`
	Reveal  RevealConfig  `yaml:"reveal"`
}

// PhysicsConfig defines the player's kinematic constants (world units per second).
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	MoveSpeed   float64 `yaml:"move_speed"`
}

// PlayerConfig defines the player's body size.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WorldConfig defines the play field and its soft bounds.
type WorldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinX      float64 `yaml:"min_x"`      // Hard left clamp
	MaxX      float64 `yaml:"max_x"`      // Soft right clamp, past Width so edge triggers are reachable
	FallLimit float64 `yaml:"fall_limit"` // Y beyond which the player respawns
}

// TimingConfig defines frame and overlay timing in seconds.
type TimingConfig struct {
	MaxFrame      float64 `yaml:"max_frame"`      // Upper bound on a single tick's dt
	RevealSeconds float64 `yaml:"reveal_seconds"` // Reveal overlay countdown
}

// InputConfig tunes how terminal key presses become held keys.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // A movement key counts as held this long after its last press
}

// RevealConfig configures the secret reveal side effect.
type RevealConfig struct {
	URL        string `yaml:"url"`         // Companion view opened in the browser, empty disables
	CodeLength int    `yaml:"code_length"` // Length of the generated access code
}

// Validate checks that the configuration can drive a simulation.
func (c PassageConfig) Validate() error {
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	case c.World.MaxX < c.World.MinX:
		return fmt.Errorf("config: world.max_x %v is left of world.min_x %v", c.World.MaxX, c.World.MinX)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Timing.MaxFrame <= 0:
		return fmt.Errorf("config: timing.max_frame must be positive, got %v", c.Timing.MaxFrame)
	case c.Timing.RevealSeconds <= 0:
		return fmt.Errorf("config: timing.reveal_seconds must be positive, got %v", c.Timing.RevealSeconds)
	case c.Reveal.CodeLength <= 0:
		return fmt.Errorf("config: reveal.code_length must be positive, got %d", c.Reveal.CodeLength)
	}
	return nil
}
