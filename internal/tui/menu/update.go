package menu

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-action-layout/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.adjustScroll()
		return m, nil

	case actionsChangedMsg:
		// unsaved edits win over the rescan
		if m.ed.NeedsSaved() {
			m.setStatus("Installed actions changed. Press u to discard your changes and reload.")
		} else {
			m.reload(m.ed.Reload, "Installed actions changed, layout reloaded")
		}
		return m, waitForChange(m.changes, actionsChangedMsg{})

	case disabledChangedMsg:
		if err := m.ed.RefreshDisabled(); err != nil {
			m.setError("%v", err)
		} else {
			m.refresh()
		}
		return m, waitForChange(m.disabled, disabledChangedMsg{})

	case confirm.ConfirmedMsg:
		return m.answer(msg.ID, true)
	case confirm.DeniedMsg:
		return m.answer(msg.ID, false)
	case confirm.CancelledMsg:
		if msg.ID == confirmAccel {
			m.setStatus("Shortcut left with %s", m.accelOwner)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.editing != editNone {
			return m.updateInput(msg)
		}
		if m.grabbing {
			if done, cmd := m.updateGrab(msg); done {
				return m, cmd
			}
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.grabbing {
		m.status = ""
	}
	row, hasRow := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.ed.NeedsSaved() {
			m.confirm.Activate(confirmQuit, "Save changes before quitting?")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.setCursor(m.cursor - max(m.getViewportHeight()/2, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.setCursor(m.cursor + max(m.getViewportHeight()/2, 1))
	case key.Matches(msg, m.keys.GoToTop):
		m.setCursor(0)
	case key.Matches(msg, m.keys.GoToBottom):
		m.setCursor(len(m.rows) - 1)

	case key.Matches(msg, m.keys.MoveUp):
		if hasRow && !m.ed.MoveUp(row.Handle) {
			m.setStatus("Already at the top")
		}
		m.refresh()
	case key.Matches(msg, m.keys.MoveDown):
		if hasRow && !m.ed.MoveDown(row.Handle) {
			m.setStatus("Already at the bottom")
		}
		m.refresh()
	case key.Matches(msg, m.keys.Grab):
		if hasRow {
			m.grabbing = true
			m.grabbed = row.Handle
			m.setStatus("Moving %s: go to the target, then b/a/i to drop before, after or into it. esc cancels.", rowName(row))
		}

	case key.Matches(msg, m.keys.NewSubmenu):
		m.apply(func() error { _, err := m.ed.InsertSubmenu(); return err })
	case key.Matches(msg, m.keys.NewSeparator):
		m.apply(func() error { _, err := m.ed.InsertSeparator(); return err })
	case key.Matches(msg, m.keys.Remove):
		m.apply(m.ed.RemoveSelected)
	case key.Matches(msg, m.keys.Toggle):
		if hasRow {
			m.apply(func() error { return m.ed.ToggleEnabled(row.Handle) })
		}
	case key.Matches(msg, m.keys.Rename):
		if hasRow {
			label := ""
			if row.Custom {
				label = row.Label
			}
			m.startEdit(row, editLabel, label)
		}
	case key.Matches(msg, m.keys.Icon):
		if hasRow {
			m.startEdit(row, editIcon, row.Icon)
		}
	case key.Matches(msg, m.keys.OriginalIcon):
		if hasRow {
			m.apply(func() error { return m.ed.OriginalIcon(row.Handle) })
		}
	case key.Matches(msg, m.keys.Accel):
		if hasRow {
			m.startEdit(row, editAccel, row.Accel)
		}

	case key.Matches(msg, m.keys.Save):
		if err := m.ed.Save(); err != nil {
			m.setError("%v", err)
		} else {
			m.setStatus("Saved %s", m.ed.Config().LayoutFile)
		}
	case key.Matches(msg, m.keys.Discard):
		m.reload(m.ed.Discard, "Changes discarded")
	case key.Matches(msg, m.keys.Default):
		m.confirm.Activate(confirmDefault, "Replace the layout with all actions at the top level?")
	}
	return m, nil
}

// updateGrab handles the keys that end a move. It reports whether msg was
// consumed.
func (m *Model) updateGrab(msg tea.KeyMsg) (bool, tea.Cmd) {
	var pos tree.DropPosition
	switch {
	case key.Matches(msg, m.keys.Back):
		m.grabbing = false
		m.setStatus("Move cancelled")
		return true, nil
	case key.Matches(msg, m.keys.DropBefore):
		pos = tree.Before
	case key.Matches(msg, m.keys.DropAfter):
		pos = tree.After
	case key.Matches(msg, m.keys.DropInto):
		pos = tree.IntoOrAfter
	default:
		return false, nil
	}

	m.grabbing = false
	target, ok := m.current()
	if !ok {
		return true, nil
	}
	if err := m.ed.Drop(m.grabbed, target.Handle, pos); err != nil {
		m.setError("Cannot move here: %v", err)
		return true, nil
	}
	m.refresh()
	m.setStatus("Moved")
	return true, nil
}

// answer acts on a reply from the confirm dialog.
func (m Model) answer(id string, yes bool) (tea.Model, tea.Cmd) {
	switch id {
	case confirmQuit:
		if yes {
			if err := m.ed.Save(); err != nil {
				m.setError("%v", err)
				return m, nil
			}
		}
		m.quitting = true
		return m, tea.Quit
	case confirmDefault:
		if yes {
			m.reload(m.ed.DefaultLayout, "Default layout restored, save to keep it")
		}
	case confirmAccel:
		if !yes {
			m.setStatus("Shortcut left with %s", m.accelOwner)
			return m, nil
		}
		h, value := m.accelTarget, m.pendingAccel
		m.apply(func() error {
			return m.ed.SetAccelerator(h, value, func(string) bool { return true })
		})
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.stopEdit()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		field, h, value := m.editing, m.editTarget, m.input.Value()
		m.stopEdit()
		m.commitEdit(field, h, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startEdit(row editor.Row, field editField, value string) {
	if row.Type == layout.TypeSeparator || !row.Enabled {
		m.setError("%v", editor.ErrNotEditable)
		return
	}
	m.editing = field
	m.editTarget = row.Handle
	switch field {
	case editLabel:
		m.input.Placeholder = "Label (empty restores the original)"
	case editIcon:
		m.input.Placeholder = "Icon name or path (empty for no icon)"
	case editAccel:
		m.input.Placeholder = "Shortcut such as <Primary><Shift>k (empty clears)"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) stopEdit() {
	m.editing = editNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) commitEdit(field editField, h tree.Handle, value string) {
	switch field {
	case editLabel:
		m.apply(func() error { return m.ed.SetLabel(h, value) })
	case editIcon:
		if value == "" {
			m.apply(func() error { return m.ed.ClearIcon(h) })
		} else {
			m.apply(func() error { return m.ed.SetIcon(h, value) })
		}
	case editAccel:
		if value == "" {
			m.apply(func() error { return m.ed.ClearAccelerator(h) })
			return
		}
		var owner string
		err := m.ed.SetAccelerator(h, value, func(o string) bool {
			owner = o
			return false
		})
		if errors.Is(err, editor.ErrAccelKept) {
			m.accelTarget = h
			m.pendingAccel = value
			m.accelOwner = owner
			m.confirm.Activate(confirmAccel, fmt.Sprintf("%s is already used by %s. Move it here?", accelLabel(value), owner))
			return
		}
		m.finish(err)
	}
}

// apply runs a mutation and reflects its outcome.
func (m *Model) apply(fn func() error) {
	m.finish(fn())
}

func (m *Model) finish(err error) {
	if err != nil {
		m.setError("%v", err)
	}
	m.refresh()
}

// reload runs one of the editor's reload operations and resets view state.
func (m *Model) reload(fn func() error, done string) {
	m.grabbing = false
	m.scrollOffset = 0
	if err := fn(); err != nil {
		m.setError("%v", err)
	} else {
		m.setStatus(done)
	}
	m.refresh()
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}
