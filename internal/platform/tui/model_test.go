package tui

import (
	"os"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/secret-passage/internal/config"
	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
	"github.com/vovakirdan/secret-passage/internal/storage"
)

var (
	nearSpawn = core.NewRect(90, 600, 60, 60)
	farAway   = core.NewRect(1200, 100, 40, 40)
)

type fakeRuns struct {
	mu   sync.Mutex
	runs []storage.Run
}

func (f *fakeRuns) SaveRun(r storage.Run) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, r)
	return int64(len(f.runs)), nil
}

type revealCall struct {
	code, room string
}

type fakeRevealer struct {
	calls []revealCall
}

func (f *fakeRevealer) Reveal(code, room string) {
	f.calls = append(f.calls, revealCall{code, room})
}

func testRoom(id string, goal, secret core.Rect) levels.Definition {
	return levels.Definition{
		ID:        id,
		Name:      id,
		Spawn:     levels.Point{X: 100, Y: 610},
		Goal:      goal,
		Secret:    secret,
		Platforms: []core.Rect{core.NewRect(0, 650, 1280, 70)},
	}
}

func newTestModel(t *testing.T, opts Options, defs ...levels.Definition) Model {
	t.Helper()
	game, err := passage.New(config.DefaultPassageConfig(), defs)
	if err != nil {
		t.Fatalf("passage.New() failed: %v", err)
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	return NewModel(game, cfg, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func TestModelVictorySavesRun(t *testing.T) {
	runs := &fakeRuns{}
	m := newTestModel(t, Options{Runs: runs}, testRoom("one", nearSpawn, farAway))

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !m.State().Finished {
		t.Fatal("reaching the only goal should finish the run")
	}
	if len(runs.runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs.runs))
	}
	r := runs.runs[0]
	if r.RunID == "" || r.RunID != m.runID {
		t.Errorf("RunID = %q, expected %q", r.RunID, m.runID)
	}
	if r.RoomsCleared != 1 {
		t.Errorf("RoomsCleared = %d, expected 1", r.RoomsCleared)
	}
	if r.Duration <= 0 {
		t.Errorf("Duration = %v, expected > 0", r.Duration)
	}

	// Victory holds; further ticks save nothing.
	m, _ = update(t, m, TickMsg(time.Now()))
	if len(runs.runs) != 1 {
		t.Errorf("saved %d runs after holding victory, expected 1", len(runs.runs))
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	m := newTestModel(t, Options{}, testRoom("one", nearSpawn, farAway))
	m, _ = update(t, m, TickMsg(time.Now()))
	first := m.runID

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.runID == first {
		t.Error("restart should assign a new run id")
	}
	if m.State().Elapsed != 0 {
		t.Errorf("Elapsed = %v after restart, expected 0", m.State().Elapsed)
	}
}

func TestModelSecretCallsRevealer(t *testing.T) {
	rev := &fakeRevealer{}
	m := newTestModel(t, Options{Revealer: rev}, testRoom("one", farAway, nearSpawn))

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.State().Overlay != core.OverlaySecretReveal {
		t.Fatalf("Overlay = %v, expected secret reveal", m.State().Overlay)
	}
	if len(rev.calls) != 1 {
		t.Fatalf("Reveal called %d times, expected 1", len(rev.calls))
	}
	if rev.calls[0].room != "one" || len(rev.calls[0].code) != 6 {
		t.Errorf("Reveal(%q, %q), expected a 6 character code for room one", rev.calls[0].code, rev.calls[0].room)
	}

	// Space closes the overlay on the next tick.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.State().Overlay != core.OverlayNone {
		t.Errorf("Overlay = %v after cancel, expected none", m.State().Overlay)
	}
	if len(rev.calls) != 1 {
		t.Errorf("Reveal called %d times, expected the secret to fire once", len(rev.calls))
	}
}

func TestModelHeldMovement(t *testing.T) {
	m := newTestModel(t, Options{Hold: 180 * time.Millisecond}, testRoom("one", farAway, farAway))
	startX := m.game.Session().Player().X

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, TickMsg(time.Now()))
	if x := m.game.Session().Player().X; x <= startX {
		t.Errorf("X = %v after holding right, expected > %v", x, startX)
	}

	// Past the hold window the key counts as released.
	moved := m.game.Session().Player().X
	m, _ = update(t, m, TickMsg(time.Now().Add(time.Second)))
	if x := m.game.Session().Player().X; x != moved {
		t.Errorf("X = %v after the hold expired, expected %v", x, moved)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{}, testRoom("one", farAway, farAway))

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelReload(t *testing.T) {
	m := newTestModel(t, Options{}, testRoom("one", farAway, farAway))

	m, _ = update(t, m, ReloadMsg{Defs: nil})
	if n := m.game.Session().RoomCount(); n != 1 {
		t.Errorf("RoomCount = %d after a rejected reload, expected 1", n)
	}

	two := []levels.Definition{testRoom("a", farAway, farAway), testRoom("b", farAway, farAway)}
	m, _ = update(t, m, ReloadMsg{Defs: two})
	if n := m.game.Session().RoomCount(); n != 1 {
		t.Errorf("RoomCount = %d, expected the reload to wait for the next room", n)
	}
}

func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t, Options{}, testRoom("one", farAway, farAway))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if m.View() == "" {
		t.Error("View should render the room")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ScreenshotDir: dir}, testRoom("one", farAway, farAway))

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(entries))
	}
}
