package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/secret-passage/internal/core"
)

func TestHoldTracker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldTracker(180 * time.Millisecond)

	h.Press(core.ActionRight, start)

	tests := []struct {
		name   string
		offset time.Duration
		held   bool
	}{
		{"same instant", 0, true},
		{"inside window", 100 * time.Millisecond, true},
		{"window edge", 180 * time.Millisecond, true},
		{"expired", 181 * time.Millisecond, false},
		{"stays expired", 100 * time.Millisecond, false},
	}

	for _, tc := range tests {
		frame := core.NewInputFrame()
		h.Apply(&frame, start.Add(tc.offset))
		if frame.IsHeld(core.ActionRight) != tc.held {
			t.Errorf("%s: held = %v, expected %v", tc.name, frame.IsHeld(core.ActionRight), tc.held)
		}
	}
}

func TestHoldTrackerRepeatExtends(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldTracker(180 * time.Millisecond)

	for i := range 10 {
		h.Press(core.ActionLeft, start.Add(time.Duration(i)*50*time.Millisecond))
	}
	frame := core.NewInputFrame()
	h.Apply(&frame, start.Add(600*time.Millisecond))
	if !frame.IsHeld(core.ActionLeft) {
		t.Error("auto-repeat should keep the key held")
	}
}

func TestHoldTrackerOppositeDirection(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldTracker(time.Second)

	h.Press(core.ActionLeft, now)
	h.Press(core.ActionJump, now)
	h.Press(core.ActionRight, now)

	frame := core.NewInputFrame()
	h.Apply(&frame, now)
	if frame.IsHeld(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.IsHeld(core.ActionRight) || !frame.IsHeld(core.ActionJump) {
		t.Error("right and jump should be held")
	}

	h.Reset()
	frame = core.NewInputFrame()
	h.Apply(&frame, now)
	if len(frame.Held) != 0 {
		t.Errorf("Reset() left %v held", frame.Held)
	}
}
