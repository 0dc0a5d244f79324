package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleScene = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleAction = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleBlocked = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of a transcript line for styling.
type lineKind int

const (
	kindScene lineKind = iota
	kindAction
	kindInput
	kindSystem
	kindBlocked
	kindTrace
)

func (k lineKind) style() lipgloss.Style {
	switch k {
	case kindAction:
		return styleAction
	case kindInput:
		return stylePlayerInput
	case kindSystem:
		return styleSystem
	case kindBlocked:
		return styleBlocked
	case kindTrace:
		return styleTrace
	default:
		return styleScene
	}
}
