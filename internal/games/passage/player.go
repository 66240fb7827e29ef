package passage

import (
	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
)

// Player is the kinematic body the user steers. One Player is shared by every
// room of a session and is only ever repositioned, never recreated.
type Player struct {
	X, Y     float64 // Top-left corner, world units
	W, H     float64
	VX, VY   float64
	Grounded bool

	Speed       float64
	JumpImpulse float64
	Gravity     float64

	MinX      float64
	MaxX      float64
	FallLimit float64

	SpawnX, SpawnY float64 // Where a fall out of the world lands
}

// NewPlayer creates a player tuned from cfg, parked at the origin.
func NewPlayer(cfg config.PassageConfig) *Player {
	return &Player{
		W:           cfg.Player.Width,
		H:           cfg.Player.Height,
		Speed:       cfg.Physics.MoveSpeed,
		JumpImpulse: cfg.Physics.JumpImpulse,
		Gravity:     cfg.Physics.Gravity,
		MinX:        cfg.World.MinX,
		MaxX:        cfg.World.MaxX,
		FallLimit:   cfg.World.FallLimit,
	}
}

// Bounds returns the player's bounding rectangle.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// SetSpawn moves the spawn point and places the player on it at rest.
func (p *Player) SetSpawn(x, y float64) {
	p.SpawnX, p.SpawnY = x, y
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Grounded = false
}

// respawn returns the player to the spawn point after a fall.
// Horizontal velocity is recomputed from input next tick anyway.
func (p *Player) respawn() {
	p.X, p.Y = p.SpawnX, p.SpawnY
	p.VY = 0
}

// Update advances the player by dt seconds against platforms and reports
// whether the player fell out of the world and was respawned.
//
// Collisions are resolved one axis at a time, visiting platforms in list
// order and re-testing the corrected body against the rest. A horizontal
// hit keeps VX, so later overlaps can push the body again. A vertical hit
// zeroes VY, so the first vertical hit stands.
func (p *Player) Update(dt float64, in core.InputFrame, platforms []core.Rect) bool {
	p.VX = 0
	if in.IsHeld(core.ActionLeft) {
		p.VX = -p.Speed
	}
	if in.IsHeld(core.ActionRight) {
		p.VX = p.Speed
	}

	if p.Grounded && in.Has(core.ActionJump) {
		p.VY = -p.JumpImpulse
		p.Grounded = false
	}

	// Applied on grounded frames too; the ground pass below absorbs it.
	p.VY += p.Gravity * dt

	p.X += p.VX * dt
	body := p.Bounds()
	for _, plat := range platforms {
		if !body.Intersects(plat) {
			continue
		}
		if p.VX > 0 {
			p.X = plat.Left() - p.W
		} else if p.VX < 0 {
			p.X = plat.Right()
		}
		body = p.Bounds()
	}

	p.Y += p.VY * dt
	body = p.Bounds()
	p.Grounded = false
	for _, plat := range platforms {
		if !body.Intersects(plat) {
			continue
		}
		if p.VY > 0 {
			p.Y = plat.Top() - p.H
			p.VY = 0
			p.Grounded = true
		} else if p.VY < 0 {
			p.Y = plat.Bottom()
			p.VY = 0
		}
		body = p.Bounds()
	}

	p.X = core.ClampF(p.X, p.MinX, p.MaxX)

	if p.Y > p.FallLimit {
		p.respawn()
		return true
	}
	return false
}
