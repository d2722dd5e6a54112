package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
)

// --- Messages ---

// ConfirmedMsg is sent when the user answers yes.
type ConfirmedMsg struct{ ID string }

// DeniedMsg is sent when the user answers no.
type DeniedMsg struct{ ID string }

// CancelledMsg is sent when the user backs out without answering.
type CancelledMsg struct{ ID string }

// --- Model ---

// Model represents a yes/no question. ID tells the owner which question
// was answered.
type Model struct {
	Active bool
	ID     string
	Prompt string
	keys   keyMap
}

// New creates a new confirmation dialog model.
func New() Model {
	return Model{
		keys: defaultKeyMap,
	}
}

// Activate shows prompt and waits for an answer.
func (m *Model) Activate(id, prompt string) {
	m.ID = id
	m.Prompt = prompt
	m.Active = true
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		id := m.ID
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.Active = false
			return m, func() tea.Msg { return ConfirmedMsg{ID: id} }
		case key.Matches(msg, m.keys.Deny):
			m.Active = false
			return m, func() tea.Msg { return DeniedMsg{ID: id} }
		case key.Matches(msg, m.keys.Cancel):
			m.Active = false
			return m, func() tea.Msg { return CancelledMsg{ID: id} }
		}
	}

	return m, nil
}

// --- View ---

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	dialogBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultTheme.Colors.Orange).
		Padding(0, 2).
		Render(m.Prompt)

	helpText := theme.DefaultTheme.Muted.Copy().
		Width(lipgloss.Width(dialogBox)).
		Align(lipgloss.Center).
		Render("(y/n, esc to cancel)")

	return lipgloss.JoinVertical(lipgloss.Left, dialogBox, helpText)
}

// --- KeyMap ---

type keyMap struct {
	Confirm key.Binding
	Deny    key.Binding
	Cancel  key.Binding
}

var defaultKeyMap = keyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
