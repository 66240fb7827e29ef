package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/secret-passage/internal/core"
	"github.com/vovakirdan/secret-passage/internal/games/passage"
	"github.com/vovakirdan/secret-passage/internal/games/passage/levels"
	"github.com/vovakirdan/secret-passage/internal/storage"
)

// DefaultHold is the hold window used when Options.Hold is unset.
const DefaultHold = 180 * time.Millisecond

// RunStore records finished runs.
type RunStore interface {
	SaveRun(r storage.Run) (int64, error)
}

// Revealer performs the secret side effect without blocking.
type Revealer interface {
	Reveal(code, room string)
}

// Options holds the optional collaborators of a Model.
type Options struct {
	Runs          RunStore        // Nil disables run history
	Revealer      Revealer        // Nil disables the reveal side effect
	Watcher       *levels.Watcher // Nil disables live reload
	Logger        *log.Logger     // Nil discards log output
	Hold          time.Duration   // Hold window for movement keys, DefaultHold if zero
	ScreenshotDir string          // Empty disables screenshots
}

// ReloadMsg carries a reloaded room set from the watcher.
type ReloadMsg levels.Reload

// Model is the Bubble Tea model that runs the platformer.
type Model struct {
	game       *passage.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	hold       *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	runID      string
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *passage.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}

	game.Reset(cfg)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(opts.Hold),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		runID:      uuid.NewString(),
	}
}

// Init starts the tick loop and, if configured, the room watcher.
func (m Model) Init() tea.Cmd {
	m.opts.Logger.Info("run started", "run", m.runID, "room", m.gameState.RoomID, "seed", m.config.Seed)
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.opts.Watcher))
}

// waitForReload blocks on the watcher until it delivers a reload.
func waitForReload(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-w.Reloads
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ReloadMsg:
		return m.handleReload(levels.Reload(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	now := time.Now()
	for _, a := range m.keys.MapKey(msg) {
		switch a {
		case core.ActionQuit:
			m.opts.Logger.Info("quit", "run", m.runID, "room", m.gameState.RoomID)
			m.quitting = true
			return m, tea.Quit
		case core.ActionLeft, core.ActionRight:
			m.hold.Press(a, now)
		default:
			m.inputFrame.Set(a)
		}
	}
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the
// previous tick. The session caps long frames itself.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	m.hold.Apply(&m.inputFrame, now)
	result := m.game.Step(dt, m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvents logs simulation events and runs their side effects.
func (m *Model) handleEvents(events []core.Event) {
	logger := m.opts.Logger
	st := m.gameState

	for _, e := range events {
		switch e.Kind {
		case core.EventRoomEntered:
			logger.Info("room entered", "room", e.Room, "elapsed", st.Elapsed)

		case core.EventRespawn:
			logger.Debug("respawn", "room", e.Room, "falls", st.Falls)

		case core.EventSecretFound:
			logger.Info("secret found", "room", e.Room, "code", e.Code)
			if m.opts.Revealer != nil {
				m.opts.Revealer.Reveal(e.Code, e.Room)
			}

		case core.EventRevealClosed:
			logger.Debug("reveal closed", "room", e.Room)

		case core.EventVictory:
			logger.Info("victory", "run", m.runID, "elapsed", st.Elapsed, "falls", st.Falls, "secrets", st.Secrets)
			m.saveRun(st)

		case core.EventRestart:
			m.runID = uuid.NewString()
			m.hold.Reset()
			logger.Info("restart", "run", m.runID)
		}
	}
}

// saveRun records a finished run. Failures are logged and ignored.
func (m *Model) saveRun(st core.GameState) {
	if m.opts.Runs == nil {
		return
	}
	_, err := m.opts.Runs.SaveRun(storage.Run{
		RunID:        m.runID,
		Duration:     st.Elapsed,
		RoomsCleared: st.Room + 1,
		Secrets:      st.Secrets,
		Falls:        st.Falls,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "run", m.runID, "error", err)
	}
}

// handleReload swaps in a reloaded room set. A broken set keeps the
// current rooms.
func (m Model) handleReload(r levels.Reload) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Watcher)
	if r.Err != nil {
		m.opts.Logger.Warn("room reload failed", "error", r.Err)
		return m, next
	}
	if err := m.game.SetRooms(r.Defs); err != nil {
		m.opts.Logger.Warn("reloaded rooms rejected", "error", err)
		return m, next
	}
	m.opts.Logger.Info("rooms reloaded", "rooms", len(r.Defs))
	return m, next
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game *passage.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
