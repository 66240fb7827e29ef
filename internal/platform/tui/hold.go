package tui

import (
	"time"

	"github.com/vovakirdan/secret-passage/internal/core"
)

// HoldTracker turns key presses into held keys. Terminals report presses
// and auto-repeats but never releases, so a movement key counts as held
// until window has passed since its last press.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker with the given hold window.
func NewHoldTracker(window time.Duration) *HoldTracker {
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a key press at now. Pressing a direction releases the
// opposite one immediately.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
	}
	h.last[a] = now
}

// Apply marks every action still inside its hold window as held in frame
// and forgets the expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) > h.window {
			delete(h.last, a)
			continue
		}
		frame.Hold(a)
	}
}

// Reset releases all keys.
func (h *HoldTracker) Reset() {
	clear(h.last)
}
