package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mglynn/daytrack/internal/projection"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if len(m.trackers) == 0 {
		return docStyle.Render("No trackers yet.\nCreate one with 'daytrack tracker add'.")
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(m.checklist.View()),
		m.viewStatus(),
		m.help.View(m),
	)

	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, t := range m.trackers {
		if i == m.selected {
			tabs = append(tabs, activeTabStyle.Render(t.Name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.statusMsg != "" {
		return dangerStyle.Render(m.statusMsg)
	}

	t := m.trackers[m.selected]
	tasks, err := m.service.ListTasks(t.ID)
	if err != nil {
		return ""
	}
	completions, err := m.service.CompletionsOn(t.ID, m.today)
	if err != nil {
		return ""
	}
	stats, err := projection.StatsOn(tasks, completions, m.today, time.Local)
	if err != nil {
		return ""
	}

	return statusStyle.Render(fmt.Sprintf("%s  %d/%d done (%.0f%%)",
		m.today, stats.Completed, stats.Total, stats.CompletionRate()))
}
