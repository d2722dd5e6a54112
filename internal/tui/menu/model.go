package menu

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-action-layout/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// editField is the node property being typed in.
type editField int

const (
	editNone editField = iota
	editLabel
	editIcon
	editAccel
)

// Questions asked through the confirm dialog.
const (
	confirmQuit    = "quit"
	confirmDefault = "default"
	confirmAccel   = "accel"
)

// Model is the bubbletea model of the menu editor.
type Model struct {
	ed       *editor.Editor
	changes  <-chan struct{}
	disabled <-chan struct{}

	rows         []editor.Row
	cursor       int
	scrollOffset int
	keys         KeyMap
	help         help.Model
	width        int
	height       int

	// Property editing state
	input      textinput.Model
	editing    editField
	editTarget tree.Handle

	// Move state: the grabbed node follows the cursor until dropped
	grabbing bool
	grabbed  tree.Handle

	// Confirmation state
	confirm      confirm.Model
	accelTarget  tree.Handle
	pendingAccel string
	accelOwner   string

	status    string
	statusErr bool
	quitting  bool
}

// actionsChangedMsg is sent when installed action files change on disk.
type actionsChangedMsg struct{}

// disabledChangedMsg is sent when the stored disabled list changes.
type disabledChangedMsg struct{}

// New creates the editor TUI over ed. changes, when not nil, signals that
// the installed actions changed; disabled signals that the disabled list
// was rewritten.
func New(ed *editor.Editor, changes, disabled <-chan struct{}) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Menu Layout - Help").
		Build()

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	m := Model{
		ed:       ed,
		changes:  changes,
		disabled: disabled,
		keys:     keys,
		help:     helpModel,
		input:    ti,
		confirm:  confirm.New(),
	}
	m.refresh()
	if report := ed.LastLoad(); report.Discarded {
		m.setError("Layout file was invalid and has been ignored: %v", report.Reason)
	}
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes, actionsChangedMsg{}),
		waitForChange(m.disabled, disabledChangedMsg{}),
	)
}

// waitForChange blocks on a watcher channel and delivers msg. A closed or
// nil channel ends the subscription.
func waitForChange(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

// refresh rebuilds the rows and moves the cursor to the selected node.
func (m *Model) refresh() {
	m.rows = m.ed.Rows()
	for i, r := range m.rows {
		if r.Selected {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
	m.adjustScroll()
}

// current returns the row under the cursor.
func (m *Model) current() (editor.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return editor.Row{}, false
	}
	return m.rows[m.cursor], true
}

// setCursor moves the cursor and the editor selection together.
func (m *Model) setCursor(i int) {
	m.cursor = i
	m.clampCursor()
	if r, ok := m.current(); ok {
		m.ed.Select(r.Handle)
	}
	m.adjustScroll()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// getViewportHeight calculates how many lines are available for the rows.
func (m *Model) getViewportHeight() int {
	// top margin, header, blank, blank, status, input, footer
	const fixedLines = 7
	if m.height == 0 {
		return len(m.rows)
	}
	if h := m.height - fixedLines; h > 0 {
		return h
	}
	return 1
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
