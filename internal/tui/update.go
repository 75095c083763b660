package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mglynn/daytrack/internal/tui/components/checklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave room for the tab row, status line, and help.
		m.checklist.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			if len(m.trackers) > 0 {
				m.selected = (m.selected + 1) % len(m.trackers)
				m.reloadChecklist()
			}
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			if len(m.trackers) > 0 {
				m.selected = (m.selected - 1 + len(m.trackers)) % len(m.trackers)
				m.reloadChecklist()
			}
			return m, nil
		}

	case checklist.ToggleTaskMsg:
		m.statusMsg = ""
		t := m.trackers[m.selected]
		if _, err := m.service.ToggleCompletion(msg.ID, t.ID, m.today); err != nil {
			m.statusMsg = "toggle failed: " + err.Error()
		}
		m.reloadChecklist()
		return m, nil

	case checklist.RateTaskMsg:
		m.statusMsg = ""
		t := m.trackers[m.selected]
		if _, err := m.service.SetRating(msg.ID, t.ID, m.today, msg.Rating); err != nil {
			m.statusMsg = "rating failed: " + err.Error()
		}
		m.reloadChecklist()
		return m, nil
	}

	var cmd tea.Cmd
	m.checklist, cmd = m.checklist.Update(msg)
	return m, cmd
}
