// Package checklist renders one tracker's tasks for the selected day and
// emits toggle and rating messages for the root model to apply.
package checklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mglynn/daytrack/internal/models"
)

type ToggleTaskMsg struct {
	ID string
}

type RateTaskMsg struct {
	ID     string
	Rating float64
}

type Item struct {
	Task       models.Task
	Completion *models.TaskCompletion
}

func (i Item) Title() string {
	if i.Completion != nil && i.Completion.Completed {
		return "✓ " + i.Task.Title
	}
	return "○ " + i.Task.Title
}

func (i Item) Description() string {
	if i.Completion == nil || !i.Completion.Completed {
		return "not completed today"
	}
	if i.Completion.Rating > 0 {
		return fmt.Sprintf("completed, rated %.1f", i.Completion.Rating)
	}
	return "completed today"
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Toggle key.Binding
	Rate   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle done"),
		),
		Rate: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5"),
			key.WithHelp("0-5", "rate"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, completions []models.TaskCompletion, width, height int) Model {
	l := list.New(buildItems(tasks, completions), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Rate}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Rate}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func buildItems(tasks []models.Task, completions []models.TaskCompletion) []list.Item {
	byTask := make(map[string]models.TaskCompletion)
	for _, c := range completions {
		byTask[c.TaskID] = c
	}

	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		item := Item{Task: t}
		if c, ok := byTask[t.ID]; ok {
			item.Completion = &c
		}
		items[i] = item
	}
	return items
}

func (m *Model) SetTasks(tasks []models.Task, completions []models.TaskCompletion) {
	m.list.SetItems(buildItems(tasks, completions))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: i.Task.ID} }
			}
		case key.Matches(msg, m.keys.Rate):
			if i, ok := m.list.SelectedItem().(Item); ok {
				rating := float64(msg.String()[0] - '0')
				return m, func() tea.Msg { return RateTaskMsg{ID: i.Task.ID, Rating: rating} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Add one with 'daytrack task add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
