package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mglynn/daytrack/internal/constants"
	"github.com/mglynn/daytrack/internal/models"
	"github.com/mglynn/daytrack/internal/tracker"
	"github.com/mglynn/daytrack/internal/tui/components/checklist"
)

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tracker"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tracker"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	service   *tracker.Service
	trackers  []models.Tracker
	selected  int
	checklist checklist.Model
	keys      KeyMap
	help      help.Model
	today     string
	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(service *tracker.Service) Model {
	today := time.Now().Format(constants.DateFormat)

	trackers, err := service.ListTrackers()
	if err != nil {
		trackers = []models.Tracker{}
	}

	m := Model{
		service:   service,
		trackers:  trackers,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(nil, nil, 0, 0),
		today:     today,
	}
	m.reloadChecklist()

	return m
}

// reloadChecklist refreshes the task list for the selected tracker.
func (m *Model) reloadChecklist() {
	if len(m.trackers) == 0 {
		m.checklist.SetTasks(nil, nil)
		return
	}

	t := m.trackers[m.selected]
	tasks, err := m.service.ListTasks(t.ID)
	if err != nil {
		m.statusMsg = "failed to load tasks: " + err.Error()
		return
	}
	completions, err := m.service.CompletionsOn(t.ID, m.today)
	if err != nil {
		m.statusMsg = "failed to load completions: " + err.Error()
		return
	}
	m.checklist.SetTasks(tasks, completions)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return m.checklist.Init()
}
