package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/act/engine/state"
)

// roomDisplayName derives a human-readable name from a room ID.
// "great_hall" -> "Great Hall", "castle-gates" -> "Castle Gates".
func roomDisplayName(id string) string {
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(id))
}

// renderStatusBar produces a full-width inverted status line showing
// current room, action count, inventory, and turn count.
func (m Model) renderStatusBar() string {
	p := m.engine.Player

	left := " " + roomDisplayName(p.Room)
	if room, err := m.engine.Room(); err == nil {
		left += fmt.Sprintf(" | Actions: %d", len(room.Actions))
	}

	inv := state.InventoryList(p)
	right := fmt.Sprintf("T:%d ", m.engine.Turns)

	// Show inventory items if they fit, otherwise just count.
	if len(inv) > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(inv, ", "), m.engine.Turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(inv), m.engine.Turns)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
