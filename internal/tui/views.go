package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the tab bar, the active list and the footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		m.lists[m.active].View(),
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m Model) renderTabs() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := m.theme.InactiveTab
		if i == m.active {
			style = m.theme.ActiveTab
		}
		parts[i] = style.Render(t.name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return m.theme.StatusError.Render("error: " + m.lastError.Error())
	}
	return m.theme.Status.Render(m.status)
}

func (m Model) renderHelp() string {
	bindings := m.keymap.ShortHelp()
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		if m.readOnly && h.Key == m.keymap.Delete.Help().Key {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "/ filter")
	return m.theme.Help.Render(strings.Join(parts, " • "))
}
