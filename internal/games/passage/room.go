package passage

import (
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// Room is one level: its platforms, a goal trigger and a secret trigger,
// acting on the session's shared player.
type Room struct {
	def       levels.Definition
	player    *Player
	platforms *PlatformSet
}

// NewRoom builds a room from its definition. The player is not moved
// until Enter is called.
func NewRoom(def levels.Definition, player *Player) *Room {
	return &Room{
		def:       def,
		player:    player,
		platforms: NewPlatformSet(def),
	}
}

// Enter places the shared player at this room's spawn point.
func (r *Room) Enter() {
	r.player.SetSpawn(r.def.Spawn.X, r.def.Spawn.Y)
}

// Update advances one tick: platforms move first, then the player resolves
// against their new positions. It reports whether the player fell.
func (r *Room) Update(dt float64, in core.InputFrame) bool {
	r.platforms.Update(dt)
	return r.player.Update(dt, in, r.platforms.Solids())
}

// ReachedGoal reports whether the player overlaps the goal trigger.
func (r *Room) ReachedGoal() bool {
	return r.player.Bounds().Intersects(r.def.Goal)
}

// EnteredSecret reports whether the player overlaps the secret trigger.
func (r *Room) EnteredSecret() bool {
	return r.player.Bounds().Intersects(r.def.Secret)
}

// ID returns the room's identifier.
func (r *Room) ID() string { return r.def.ID }

// Name returns the room's display name.
func (r *Room) Name() string { return r.def.Name }

// Goal returns the goal trigger rectangle.
func (r *Room) Goal() core.Rect { return r.def.Goal }

// Secret returns the secret trigger rectangle.
func (r *Room) Secret() core.Rect { return r.def.Secret }

// Flag returns the visual goal marker, if the room has one.
func (r *Room) Flag() (levels.Point, bool) {
	if r.def.Flag == nil {
		return levels.Point{}, false
	}
	return *r.def.Flag, true
}

// Platforms returns the room's platform set.
func (r *Room) Platforms() *PlatformSet { return r.platforms }
