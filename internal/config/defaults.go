package config

import (
	_ "embed"
)

//go:embed defaults/passage.yaml
var defaultPassageYAML []byte

// DefaultPassageConfig returns the default tuning.
func DefaultPassageConfig() PassageConfig {
	return PassageConfig{
		Physics: PhysicsConfig{
			Gravity:     1500,
			JumpImpulse: 650,
			MoveSpeed:   300,
		},
		Player: PlayerConfig{
			Width:  30,
			Height: 40,
		},
		World: WorldConfig{
			Width:     1280,
			Height:    720,
			MinX:      0,
			MaxX:      1300,
			FallLimit: 800,
		},
		Timing: TimingConfig{
			MaxFrame:      0.05,
			RevealSeconds: 3.0,
		},
		Input: InputConfig{
			HoldMS: 180,
		},
		Reveal: RevealConfig{
			URL:        "http://localhost:3000",
			CodeLength: 6,
		},
	}
}
