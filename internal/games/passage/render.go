package passage

import (
	"fmt"
	"math"

	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

// Visual characters for rendering
const (
	SolidChar    = '█'
	LedgeChar    = '▀'
	MovingChar   = '▬'
	DecorChar    = '▔'
	FakeWallChar = '▒'
	PlayerChar   = '█'
	FlagChar     = '▶'
	PoleChar     = '│'
	DustChar     = '·'
)

// Minimum screen size that fits the overlays
const (
	MinScreenW = 40
	MinScreenH = 12
)

const dustCount = 14

// projection maps world units onto the play field below the HUD row.
type projection struct {
	sx, sy float64 // Cells per world unit
	top    int     // First play field row
	w, h   int     // Play field size in cells
}

func (g *Game) projection(dst *core.Screen) projection {
	h := dst.Height() - 1
	return projection{
		sx:  float64(dst.Width()) / g.cfg.World.Width,
		sy:  float64(h) / g.cfg.World.Height,
		top: 1,
		w:   dst.Width(),
		h:   h,
	}
}

// cells converts a world rectangle to the grid cells it covers. Anything
// thinner than a cell still gets one cell so narrow ledges stay visible.
func (p projection) cells(r core.Rect) core.GridRect {
	x0 := int(math.Floor(r.X * p.sx))
	y0 := int(math.Floor(r.Y * p.sy))
	x1 := int(math.Ceil(r.Right() * p.sx))
	y1 := int(math.Ceil(r.Bottom() * p.sy))
	return core.NewGridRect(x0, y0+p.top, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// point converts a world position to a cell, clamped to the play field.
func (p projection) point(x, y float64) (int, int) {
	cx := core.Clamp(int(x*p.sx), 0, p.w-1)
	cy := core.Clamp(int(y*p.sy), 0, p.h-1)
	return cx, cy + p.top
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.frame++

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorHUD)
		return
	}

	s := g.session
	room := s.ActiveRoom()
	proj := g.projection(dst)

	g.drawDust(dst, proj)
	g.drawRoom(dst, proj, room)

	body := proj.cells(s.Player().Bounds())
	// Keep the player visible while overtravelling past the right edge.
	if body.Right() > proj.w {
		body.X = proj.w - body.W
	}
	dst.DrawRect(body, PlayerChar, core.ColorPlayer)

	g.drawHUD(dst)

	switch s.Overlay() {
	case core.OverlaySecretReveal:
		g.drawReveal(dst)
	case core.OverlayVictory:
		g.drawVictory(dst)
	}
}

func (g *Game) drawRoom(dst *core.Screen, proj projection, room *Room) {
	set := room.Platforms()

	for _, d := range set.Decorations() {
		r := proj.cells(d.Rect)
		switch d.Kind {
		case levels.DecorationFakeWall:
			dst.DrawRect(r, FakeWallChar, core.ColorHidden)
		default:
			dst.DrawRect(r, DecorChar, core.ColorDecor)
		}
	}

	for _, p := range set.Platforms() {
		r := proj.cells(p.Rect)
		switch {
		case p.Kind == PlatformKinematic:
			dst.DrawRect(r, MovingChar, core.ColorMoving)
		case r.H == 1:
			dst.DrawRect(r, LedgeChar, core.ColorPlatform)
		default:
			dst.DrawRect(r, SolidChar, core.ColorPlatform)
		}
	}

	if flag, ok := room.Flag(); ok {
		x, y := proj.point(flag.X, flag.Y)
		_, base := proj.point(flag.X, flag.Y+50)
		for py := y + 1; py < base; py++ {
			dst.SetColored(x, py, PoleChar, core.ColorFlag)
		}
		dst.SetColored(x, y, PoleChar, core.ColorFlag)
		dst.SetColored(x+1, y, FlagChar, core.ColorFlag)
	}
}

// drawDust scatters slowly drifting motes over the play field.
func (g *Game) drawDust(dst *core.Screen, proj projection) {
	for i := range dustCount {
		x := (i*37 + g.frame/20) % proj.w
		y := (i*11+g.frame/45)%proj.h + proj.top
		dst.SetColored(x, y, DustChar, core.ColorParticle)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	st := s.State()
	left := fmt.Sprintf(" %s ", s.ActiveRoom().Name())
	right := fmt.Sprintf(" room %d/%d  falls %d  %s ", st.Room+1, s.RoomCount(), st.Falls, FormatDuration(st.Elapsed))
	dst.DrawText(0, 0, left, core.ColorHUD)
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right, core.ColorHUD)
}

func (g *Game) drawReveal(dst *core.Screen) {
	s := g.session
	lines := []overlayLine{
		{"SECRET FOUND", core.ColorTitle},
		{"", core.ColorOverlay},
		{"Access code", core.ColorOverlay},
		{s.AccessCode(), core.ColorCode},
		{"", core.ColorOverlay},
		{"Opening secret page...", core.ColorOverlay},
		{fmt.Sprintf("Closing in %.1fs  |  SPACE to close", s.OverlayRemaining()), core.ColorHUD},
	}
	drawOverlay(dst, lines)
}

func (g *Game) drawVictory(dst *core.Screen) {
	s := g.session
	st := s.State()
	lines := []overlayLine{
		{"LEVEL COMPLETE!", core.ColorTitle},
		{"", core.ColorOverlay},
		{fmt.Sprintf("All %d rooms cleared in %s", s.RoomCount(), FormatDuration(st.Elapsed)), core.ColorOverlay},
		{fmt.Sprintf("Falls: %d  Secrets: %d", st.Falls, st.Secrets), core.ColorOverlay},
		{"", core.ColorOverlay},
		{"Press R to restart  |  Q to quit", core.ColorHUD},
	}
	drawOverlay(dst, lines)
}

type overlayLine struct {
	text  string
	color core.Color
}

// drawOverlay draws a centered box with the given lines inside.
func drawOverlay(dst *core.Screen, lines []overlayLine) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l.text)))
	}
	boxW := core.Min(width+6, dst.Width())
	boxH := len(lines) + 4
	box := core.NewGridRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorOverlay)
	dst.DrawBox(box, core.ColorOverlay)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+2+i, l.text, l.color)
	}
}

// FormatDuration renders seconds as m:ss.t.
func FormatDuration(secs float64) string {
	tenths := int(secs * 10)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
