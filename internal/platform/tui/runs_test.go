package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/secret-passage/internal/storage"
)

type fakeSource struct {
	recent, fastest []storage.Run
	err             error
}

func (f fakeSource) RecentRuns(int) ([]storage.Run, error)  { return f.recent, f.err }
func (f fakeSource) FastestRuns(int) ([]storage.Run, error) { return f.fastest, f.err }

func TestRunRows(t *testing.T) {
	rows := runRows([]storage.Run{{Duration: 65.4, RoomsCleared: 2, Falls: 3, Secrets: 1}})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, expected 1", len(rows))
	}
	want := []string{"1", "1:05.4", "2", "3", "1", "-"}
	for i, cell := range rows[0] {
		if cell != want[i] {
			t.Errorf("column %d = %q, expected %q", i, cell, want[i])
		}
	}
}

func TestRunsModelToggle(t *testing.T) {
	src := fakeSource{
		recent:  []storage.Run{{RunID: "a", Duration: 90}, {RunID: "b", Duration: 45}},
		fastest: []storage.Run{{RunID: "b", Duration: 45}},
	}
	m := NewRunsModel(src, 80, 24)
	if m.Order() != OrderRecent || len(m.runs) != 2 {
		t.Fatalf("initial order %v with %d runs, expected recent with 2", m.Order(), len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.Order() != OrderFastest || len(m.runs) != 1 {
		t.Errorf("after tab: order %v with %d runs, expected fastest with 1", m.Order(), len(m.runs))
	}
	if !strings.Contains(m.View(), "FASTEST RUNS") {
		t.Error("View should show the fastest title")
	}
}

func TestRunsModelEmptyAndError(t *testing.T) {
	m := NewRunsModel(fakeSource{}, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}

	m = NewRunsModel(fakeSource{err: errors.New("disk gone")}, 80, 24)
	if !strings.Contains(m.View(), "disk gone") {
		t.Error("load error should be shown")
	}
}

func TestRunsModelQuit(t *testing.T) {
	m := NewRunsModel(fakeSource{}, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.View() != "" {
		t.Error("View should be empty after quitting")
	}
}
