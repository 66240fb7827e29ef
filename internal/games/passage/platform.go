package passage

import (
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// PlatformKind tells static geometry from scripted movers.
type PlatformKind int

const (
	PlatformStatic PlatformKind = iota
	PlatformKinematic
)

// Platform is a solid rectangle. Kinematic platforms patrol horizontally
// between StartX and EndX, reversing at each end.
type Platform struct {
	Rect   core.Rect
	Kind   PlatformKind
	StartX float64
	EndX   float64
	Speed  float64
	Dir    int // +1 or -1
}

// Update moves a kinematic platform by dt seconds. The position is clamped
// to the patrol range before the direction flips, so it never overshoots.
func (p *Platform) Update(dt float64) {
	if p.Kind != PlatformKinematic {
		return
	}
	p.Rect.X += p.Speed * float64(p.Dir) * dt
	if p.Rect.X <= p.StartX {
		p.Rect.X = p.StartX
		p.Dir = 1
	}
	if p.Rect.X >= p.EndX {
		p.Rect.X = p.EndX
		p.Dir = -1
	}
}

// PlatformSet holds a room's colliding platforms and its visual-only
// decorations. Decorations never reach the collision list.
type PlatformSet struct {
	platforms   []Platform
	decorations []levels.Decoration
	solids      []core.Rect
}

// NewPlatformSet builds the platforms of a room definition. Static
// platforms keep their file order and movers follow them.
func NewPlatformSet(def levels.Definition) *PlatformSet {
	s := &PlatformSet{
		platforms:   make([]Platform, 0, len(def.Platforms)+len(def.Moving)),
		decorations: append([]levels.Decoration(nil), def.Decorations...),
	}
	for _, r := range def.Platforms {
		s.platforms = append(s.platforms, Platform{Rect: r, Kind: PlatformStatic})
	}
	for _, m := range def.Moving {
		dir := m.Direction
		if dir == 0 {
			dir = 1
		}
		s.platforms = append(s.platforms, Platform{
			Rect:   m.Rect,
			Kind:   PlatformKinematic,
			StartX: m.StartX,
			EndX:   m.EndX,
			Speed:  m.Speed,
			Dir:    dir,
		})
	}
	s.solids = make([]core.Rect, len(s.platforms))
	s.syncSolids()
	return s
}

// Update moves every kinematic platform.
func (s *PlatformSet) Update(dt float64) {
	for i := range s.platforms {
		s.platforms[i].Update(dt)
	}
	s.syncSolids()
}

func (s *PlatformSet) syncSolids() {
	for i, p := range s.platforms {
		s.solids[i] = p.Rect
	}
}

// Solids returns the current collision rectangles in collision order.
// The slice is reused between ticks; callers must not keep it.
func (s *PlatformSet) Solids() []core.Rect {
	return s.solids
}

// Platforms returns the platforms with their current positions.
func (s *PlatformSet) Platforms() []Platform {
	return s.platforms
}

// Decorations returns the non-colliding geometry.
func (s *PlatformSet) Decorations() []levels.Decoration {
	return s.decorations
}
