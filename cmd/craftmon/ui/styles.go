// Package ui is the terminal console that stands in for a wall of physical
// monitors: each simulated monitor renders as a panel, and the keyboard
// injects touch events onto the bus.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"craftmon/internal/screen"
)

// paletteHex maps the 16 monitor colors to their usual hex values.
var paletteHex = [screen.PaletteSize]lipgloss.Color{
	screen.White:     lipgloss.Color("#F0F0F0"),
	screen.Orange:    lipgloss.Color("#F2B233"),
	screen.Magenta:   lipgloss.Color("#E57FD8"),
	screen.LightBlue: lipgloss.Color("#99B2F2"),
	screen.Yellow:    lipgloss.Color("#DEDE6C"),
	screen.Lime:      lipgloss.Color("#7FCC19"),
	screen.Pink:      lipgloss.Color("#F2B2CC"),
	screen.Gray:      lipgloss.Color("#4C4C4C"),
	screen.LightGray: lipgloss.Color("#999999"),
	screen.Cyan:      lipgloss.Color("#4C99B2"),
	screen.Purple:    lipgloss.Color("#B266E5"),
	screen.Blue:      lipgloss.Color("#3366CC"),
	screen.Brown:     lipgloss.Color("#7F664C"),
	screen.Green:     lipgloss.Color("#57A64E"),
	screen.Red:       lipgloss.Color("#CC4C4C"),
	screen.Black:     lipgloss.Color("#111111"),
}

// TermColor returns the terminal color for a monitor palette color.
func TermColor(c screen.Color) lipgloss.Color {
	if int(c) >= screen.PaletteSize {
		return paletteHex[screen.Black]
	}
	return paletteHex[c]
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4C4C4C"))

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("#7FCC19"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F0F0F0"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)
)
