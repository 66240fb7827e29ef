package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/secret-passage/internal/core"
)

// colorStyles maps core.Color roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorPlatform: lipgloss.NewStyle().Foreground(lipgloss.Color("66")),
	core.ColorMoving:   lipgloss.NewStyle().Foreground(lipgloss.Color("173")),
	core.ColorDecor:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	core.ColorHidden:   lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("153")).Bold(true),
	core.ColorFlag:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOverlay:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorCode:     lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
	core.ColorParticle: lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
