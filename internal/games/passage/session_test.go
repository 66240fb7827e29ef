package passage

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
)

var (
	farAway   = core.NewRect(1200, 100, 40, 40)
	atSpawn   = core.NewRect(90, 600, 60, 60)
	downRight = core.NewRect(400, 570, 40, 80)
)

func testConfig() config.PassageConfig {
	return config.DefaultPassageConfig()
}

// flatRoom is a room with a full-width floor and the player spawned on it.
func flatRoom(id string, goal, secret core.Rect) levels.Definition {
	return levels.Definition{
		ID:        id,
		Name:      strings.ToUpper(id),
		Spawn:     levels.Point{X: 100, Y: 610},
		Goal:      goal,
		Secret:    secret,
		Platforms: []core.Rect{ground},
		Moving: []levels.MovingDef{
			{Rect: core.NewRect(600, 300, 80, 15), StartX: 500, EndX: 800, Speed: 100, Direction: 1},
		},
	}
}

func newTestSession(t *testing.T, defs ...levels.Definition) *Session {
	t.Helper()
	s, err := NewSession(testConfig(), defs, 7)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func kinds(events []core.Event) []core.EventKind {
	out := make([]core.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// stepUntil steps with input until an event of kind fires, up to limit ticks.
func stepUntil(t *testing.T, s *Session, in core.InputFrame, kind core.EventKind, limit int) []core.Event {
	t.Helper()
	for range limit {
		if events := s.Step(tick, in); hasEvent(events, kind) {
			return events
		}
	}
	t.Fatalf("no %s event within %d ticks", kind, limit)
	return nil
}

func TestNewSessionRejectsBadRooms(t *testing.T) {
	if _, err := NewSession(testConfig(), nil, 1); !errors.Is(err, ErrNoRooms) {
		t.Errorf("NewSession(nil) = %v, expected ErrNoRooms", err)
	}

	bad := flatRoom("bad", farAway, farAway)
	bad.Spawn = levels.Point{X: 100, Y: 640}
	_, err := NewSession(testConfig(), []levels.Definition{bad}, 1)
	var ve levels.ValidationError
	if !errors.As(err, &ve) || ve.Code != "SPAWN_BLOCKED" {
		t.Errorf("NewSession() = %v, expected SPAWN_BLOCKED", err)
	}
}

func TestSessionStartsInFirstRoom(t *testing.T) {
	s := newTestSession(t, flatRoom("one", farAway, farAway), flatRoom("two", farAway, farAway))

	st := s.State()
	if st.Room != 0 || st.RoomID != "one" || st.Overlay != core.OverlayNone {
		t.Errorf("unexpected initial state: %+v", st)
	}
	if p := s.Player(); p.X != 100 || p.Y != 610 {
		t.Errorf("player at (%v, %v), expected spawn", p.X, p.Y)
	}
	if s.RoomCount() != 2 {
		t.Errorf("RoomCount() = %d", s.RoomCount())
	}
}

func TestSessionVictoryFiresOnce(t *testing.T) {
	s := newTestSession(t, flatRoom("only", atSpawn, farAway))

	events := s.Step(tick, core.NewInputFrame())
	if len(events) != 1 || events[0].Kind != core.EventVictory || events[0].Room != "only" {
		t.Fatalf("events = %v, expected a single victory", kinds(events))
	}
	if st := s.State(); st.Overlay != core.OverlayVictory || !st.Finished {
		t.Fatalf("state = %+v, expected victory overlay", st)
	}

	// The player still overlaps the goal; nothing else may happen.
	x, y := s.Player().X, s.Player().Y
	elapsed := s.State().Elapsed
	for range 300 {
		if events := s.Step(tick, held(core.ActionRight)); len(events) != 0 {
			t.Fatalf("unexpected events while in victory: %v", kinds(events))
		}
	}
	if s.Player().X != x || s.Player().Y != y {
		t.Error("player moved during the victory overlay")
	}
	if s.State().Elapsed != elapsed {
		t.Error("gameplay clock advanced during the victory overlay")
	}
}

func TestSessionVictoryIgnoresCancel(t *testing.T) {
	s := newTestSession(t, flatRoom("only", atSpawn, farAway))
	s.Step(tick, core.NewInputFrame())

	if events := s.Step(tick, pressed(core.ActionCancel, core.ActionJump)); len(events) != 0 {
		t.Errorf("unexpected events: %v", kinds(events))
	}
	if s.Overlay() != core.OverlayVictory {
		t.Errorf("overlay = %s, expected victory", s.Overlay())
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, flatRoom("one", downRight, farAway), flatRoom("two", atSpawn, farAway))

	stepUntil(t, s, held(core.ActionRight), core.EventRoomEntered, 300)
	stepUntil(t, s, core.NewInputFrame(), core.EventVictory, 1)

	events := s.Step(tick, pressed(core.ActionRestart))
	want := []core.EventKind{core.EventRestart, core.EventRoomEntered}
	got := kinds(events)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, expected %v", got, want)
	}

	st := s.State()
	if st.Room != 0 || st.Overlay != core.OverlayNone || st.Finished || st.Elapsed != 0 || st.Falls != 0 {
		t.Errorf("state not reset: %+v", st)
	}
	if p := s.Player(); p.X != 100 || p.Y != 610 || p.VX != 0 || p.VY != 0 {
		t.Errorf("player not respawned: %+v", p)
	}
}

func TestSessionRestartOnlyInVictory(t *testing.T) {
	s := newTestSession(t, flatRoom("one", farAway, farAway))
	s.Step(tick, held(core.ActionRight))
	x := s.Player().X

	if events := s.Step(tick, pressed(core.ActionRestart)); len(events) != 0 {
		t.Errorf("restart in a room produced %v", kinds(events))
	}
	if s.Player().X != x {
		t.Error("restart in a room moved the player")
	}
}

func TestSessionAdvanceRespawnsPlayer(t *testing.T) {
	two := flatRoom("two", farAway, farAway)
	two.Spawn = levels.Point{X: 700, Y: 500}
	s := newTestSession(t, flatRoom("one", downRight, farAway), two)

	events := stepUntil(t, s, held(core.ActionRight), core.EventRoomEntered, 300)
	if events[len(events)-1].Room != "two" {
		t.Errorf("entered %q, expected two", events[len(events)-1].Room)
	}
	p := s.Player()
	if p.X != 700 || p.Y != 500 || p.VX != 0 || p.VY != 0 || p.Grounded {
		t.Errorf("player not reset to the new spawn: %+v", p)
	}
	if st := s.State(); st.Room != 1 || st.RoomID != "two" {
		t.Errorf("state = %+v", st)
	}
}

func TestSessionSecretFiresOncePerVisit(t *testing.T) {
	s := newTestSession(t, flatRoom("one", downRight, atSpawn), flatRoom("two", farAway, atSpawn))

	events := s.Step(tick, core.NewInputFrame())
	if len(events) != 1 || events[0].Kind != core.EventSecretFound {
		t.Fatalf("events = %v, expected secret", kinds(events))
	}
	code := events[0].Code
	if len(code) != 6 || code != s.AccessCode() {
		t.Errorf("code = %q, AccessCode() = %q", code, s.AccessCode())
	}
	if s.Overlay() != core.OverlaySecretReveal {
		t.Fatalf("overlay = %s, expected secret reveal", s.Overlay())
	}

	events = s.Step(tick, pressed(core.ActionCancel))
	if len(events) != 1 || events[0].Kind != core.EventRevealClosed {
		t.Fatalf("events = %v, expected reveal closed", kinds(events))
	}

	// Still standing in the trigger: no second reveal this visit.
	for range 30 {
		if events := s.Step(tick, core.NewInputFrame()); hasEvent(events, core.EventSecretFound) {
			t.Fatal("secret fired twice in one visit")
		}
	}

	stepUntil(t, s, held(core.ActionRight), core.EventRoomEntered, 300)

	// Entering a room re-arms its secret.
	events = s.Step(tick, core.NewInputFrame())
	if !hasEvent(events, core.EventSecretFound) {
		t.Fatalf("events = %v, expected the secret in room two", kinds(events))
	}
	if s.State().Secrets != 2 {
		t.Errorf("Secrets = %d, expected 2", s.State().Secrets)
	}
}

func TestSessionGoalWinsOverSecret(t *testing.T) {
	s := newTestSession(t, flatRoom("one", atSpawn, atSpawn))

	events := s.Step(tick, core.NewInputFrame())
	if hasEvent(events, core.EventSecretFound) || !hasEvent(events, core.EventVictory) {
		t.Errorf("events = %v, expected victory only", kinds(events))
	}
}

func TestSessionRevealFreezesRoom(t *testing.T) {
	s := newTestSession(t, flatRoom("one", farAway, atSpawn))
	s.Step(tick, core.NewInputFrame())

	p := *s.Player()
	mover := s.ActiveRoom().Platforms().Platforms()[1].Rect
	elapsed := s.State().Elapsed

	for range 60 {
		s.Step(tick, held(core.ActionRight))
	}
	if s.Player().X != p.X || s.Player().Y != p.Y {
		t.Error("player moved under the reveal overlay")
	}
	if got := s.ActiveRoom().Platforms().Platforms()[1].Rect; got != mover {
		t.Errorf("platform moved under the reveal overlay: %+v -> %+v", mover, got)
	}
	if s.State().Elapsed != elapsed {
		t.Error("gameplay clock advanced under the reveal overlay")
	}
	if r := s.OverlayRemaining(); r <= 1.9 || r >= 2.1 {
		t.Errorf("OverlayRemaining() = %v, expected about 2s", r)
	}
}

func TestSessionRevealTimesOut(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.MaxFrame = 0.5
	s, err := NewSession(cfg, []levels.Definition{flatRoom("one", farAway, atSpawn)}, 7)
	if err != nil {
		t.Fatal(err)
	}
	s.Step(tick, core.NewInputFrame())

	for i := range 5 {
		if events := s.Step(0.5, core.NewInputFrame()); len(events) != 0 {
			t.Fatalf("step %d: overlay closed early: %v", i, kinds(events))
		}
	}
	if s.OverlayRemaining() != 0.5 {
		t.Errorf("OverlayRemaining() = %v, expected 0.5", s.OverlayRemaining())
	}

	events := s.Step(0.5, core.NewInputFrame())
	if len(events) != 1 || events[0].Kind != core.EventRevealClosed {
		t.Fatalf("events = %v, expected reveal closed", kinds(events))
	}
	if s.Overlay() != core.OverlayNone || s.OverlayRemaining() != 0 {
		t.Errorf("overlay = %s remaining = %v", s.Overlay(), s.OverlayRemaining())
	}
	if s.State().RoomID != "one" {
		t.Errorf("returned to %q, expected the same room", s.State().RoomID)
	}
}

func TestSessionClampsFrameTime(t *testing.T) {
	s := newTestSession(t, flatRoom("one", farAway, farAway))
	cfg := testConfig()

	s.Step(10, held(core.ActionRight))
	want := 100 + cfg.Physics.MoveSpeed*cfg.Timing.MaxFrame
	if s.Player().X != want {
		t.Errorf("x = %v, expected %v", s.Player().X, want)
	}
	if s.State().Elapsed != cfg.Timing.MaxFrame {
		t.Errorf("Elapsed = %v, expected %v", s.State().Elapsed, cfg.Timing.MaxFrame)
	}

	for _, dt := range []float64{0, -1} {
		if events := s.Step(dt, held(core.ActionRight)); events != nil {
			t.Errorf("dt=%v produced events", dt)
		}
	}
	if s.Player().X != want {
		t.Error("non-positive dt moved the player")
	}
}

func TestSessionFallRespawn(t *testing.T) {
	pit := flatRoom("pit", farAway, farAway)
	pit.Platforms = []core.Rect{core.NewRect(600, 650, 200, 70)}
	pit.Spawn = levels.Point{X: 100, Y: 500}
	s := newTestSession(t, pit)

	events := stepUntil(t, s, core.NewInputFrame(), core.EventRespawn, 300)
	if events[0].Room != "pit" {
		t.Errorf("respawn room = %q", events[0].Room)
	}
	if s.State().Falls != 1 {
		t.Errorf("Falls = %d, expected 1", s.State().Falls)
	}
	if p := s.Player(); p.X != 100 || p.Y != 500 || p.VY != 0 {
		t.Errorf("player at (%v, %v) vy=%v after respawn", p.X, p.Y, p.VY)
	}
	if s.Overlay() != core.OverlayNone {
		t.Error("a fall must not open an overlay")
	}
}

func TestSessionSetRoomsAppliesOnNextEntry(t *testing.T) {
	s := newTestSession(t, flatRoom("one", downRight, farAway))

	if err := s.SetRooms(nil); !errors.Is(err, ErrNoRooms) {
		t.Errorf("SetRooms(nil) = %v, expected ErrNoRooms", err)
	}
	if err := s.SetRooms([]levels.Definition{flatRoom("fresh", farAway, farAway)}); err != nil {
		t.Fatalf("SetRooms() failed: %v", err)
	}
	if s.State().RoomID != "one" {
		t.Fatal("room sequence swapped before the next room entry")
	}

	stepUntil(t, s, held(core.ActionRight), core.EventVictory, 300)
	s.Step(tick, pressed(core.ActionRestart))

	if s.State().RoomID != "fresh" {
		t.Errorf("RoomID = %q after restart, expected fresh", s.State().RoomID)
	}
}

func TestSessionCodesAreDeterministic(t *testing.T) {
	run := func(seed int64) string {
		s, err := NewSession(testConfig(), []levels.Definition{flatRoom("one", farAway, atSpawn)}, seed)
		if err != nil {
			t.Fatal(err)
		}
		return s.Step(tick, core.NewInputFrame())[0].Code
	}

	if run(42) != run(42) {
		t.Error("same seed produced different codes")
	}
	for _, r := range run(42) {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Errorf("code character %q outside A-Z0-9", r)
		}
	}
}

func TestSessionDefaultRooms(t *testing.T) {
	defs, err := levels.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, defs...)

	for range 120 {
		if events := s.Step(tick, core.NewInputFrame()); len(events) != 0 {
			t.Fatalf("idle player produced %v", kinds(events))
		}
	}
	// Spawned above the first ledge, the player drops onto it and stays.
	p := s.Player()
	if p.Y != 530 || !p.Grounded {
		t.Errorf("player at y = %v grounded = %v, expected to rest on the ledge at 570", p.Y, p.Grounded)
	}
}
