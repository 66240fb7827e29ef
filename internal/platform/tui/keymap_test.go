package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/secret-passage/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"a", runeKey('a'), []core.Action{core.ActionLeft}},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"d", runeKey('d'), []core.Action{core.ActionRight}},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, []core.Action{core.ActionRight}},
		{"w", runeKey('w'), []core.Action{core.ActionJump}},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump}},
		{"space jumps and cancels", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump, core.ActionCancel}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionCancel}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionCancel}},
		{"r", runeKey('r'), []core.Action{core.ActionRestart}},
		{"q", runeKey('q'), []core.Action{core.ActionQuit}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}},
		{"unbound", runeKey('x'), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := km.MapKey(tc.msg)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestIsScreenshot(t *testing.T) {
	km := NewKeyMapper()
	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s should request a screenshot")
	}
	if km.IsScreenshot(runeKey('s')) {
		t.Error("plain s should not request a screenshot")
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := NewKeyMapper().Keys()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	n := 0
	for _, group := range keys.FullHelp() {
		n += len(group)
	}
	if n != 7 {
		t.Errorf("FullHelp lists %d bindings, expected 7", n)
	}
}
