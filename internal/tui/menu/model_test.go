package menu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-action-layout/pkg/editor"
	"github.com/mattsolo1/grove-action-layout/pkg/store"
)

const nestedLayout = `{"toplevel": [
  {"uuid": "a.nemo_action", "type": "action"},
  {"uuid": "Tools", "type": "submenu", "user-label": "Tools", "children": [
    {"uuid": "b.nemo_action", "type": "action", "accelerator": "<Primary><Shift>b"},
    {"uuid": "separator", "type": "separator"},
    {"uuid": "c.nemo_action", "type": "action"}
  ]}
]}`

func writeAction(t *testing.T, dir, name string) {
	t.Helper()
	content := "[Nemo Action]\nName=Action " + name + "\nExec=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".nemo_action"), []byte(content), 0644))
}

func newTestModel(t *testing.T) (Model, *editor.Editor, string) {
	t.Helper()
	return newTestModelWithStore(t, store.NewMemoryStore())
}

func newTestModelWithStore(t *testing.T, st store.DisabledStore) (Model, *editor.Editor, string) {
	t.Helper()
	dir := t.TempDir()
	actionDir := filepath.Join(dir, "actions")
	require.NoError(t, os.MkdirAll(actionDir, 0755))
	for _, name := range []string{"a", "b", "c"} {
		writeAction(t, actionDir, name)
	}
	layoutFile := filepath.Join(dir, "actions-tree.json")
	require.NoError(t, os.WriteFile(layoutFile, []byte(nestedLayout), 0644))

	ed := editor.New(editor.Config{LayoutFile: layoutFile, ActionDirs: []string{actionDir}}, st, nil)
	require.NoError(t, ed.Reload())
	return New(ed, nil, nil), ed, actionDir
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to m and returns the final model and the last command.
// Answers to the confirm dialog are delivered back to the model.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		asking := m.confirm.Active
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
		if asking && cmd != nil {
			next, cmd = m.Update(cmd())
			m = next.(Model)
		}
	}
	return m, cmd
}

func ids(m Model) []string {
	var out []string
	for _, r := range m.rows {
		out = append(out, strings.Repeat("  ", r.Depth)+r.ID)
	}
	return out
}

func TestCursorFollowsSelection(t *testing.T) {
	m, ed, _ := newTestModel(t)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, "down", "down")
	assert.Equal(t, 2, m.cursor)
	sel, ok := ed.Selected()
	require.True(t, ok)
	assert.Equal(t, m.rows[2].Handle, sel)

	m, _ = press(m, "G")
	assert.Equal(t, len(m.rows)-1, m.cursor)
	m, _ = press(m, "down")
	assert.Equal(t, len(m.rows)-1, m.cursor, "cursor stops at the last row")
}

func TestMoveDownEntersSubmenu(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m, _ = press(m, "J")
	assert.Equal(t, []string{"Tools", "  a.nemo_action", "  b.nemo_action", "  separator", "  c.nemo_action"}, ids(m))
	assert.Equal(t, 1, m.cursor, "cursor stays on the moved row")
	assert.True(t, ed.NeedsSaved())

	m, _ = press(m, "g", "K")
	assert.Equal(t, "Already at the top", m.status)
}

func TestGrabAndDrop(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(m, "G", "m", "g", "b")
	assert.False(t, m.grabbing)
	assert.Equal(t, []string{"c.nemo_action", "a.nemo_action", "Tools", "  b.nemo_action", "  separator"}, ids(m))
	assert.Equal(t, 0, m.cursor)
}

func TestDropIntoSeparatorShowsError(t *testing.T) {
	m, ed, _ := newTestModel(t)
	before := ids(m)

	m, _ = press(m, "m", "down", "down", "down", "i")
	assert.True(t, m.statusErr)
	assert.Equal(t, before, ids(m))
	assert.False(t, ed.NeedsSaved())
}

func TestGrabCancelled(t *testing.T) {
	m, ed, _ := newTestModel(t)
	m, _ = press(m, "m", "down", "esc")
	assert.False(t, m.grabbing)
	assert.False(t, ed.NeedsSaved())
}

func TestRenameThroughInput(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m, _ = press(m, "r")
	require.Equal(t, editLabel, m.editing)
	m, _ = press(m, "Alpha", "enter")
	assert.Equal(t, editNone, m.editing)
	assert.Equal(t, "Alpha", m.rows[0].Label)
	assert.True(t, m.rows[0].Custom)
	assert.True(t, ed.NeedsSaved())
}

func TestEditSeparatorRefused(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(m, "down", "down", "down", "r")
	assert.Equal(t, editNone, m.editing)
	assert.True(t, m.statusErr)
}

func TestAccelConflictAsks(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m, _ = press(m, "ctrl+k", "<Primary><Shift>b", "enter")
	require.True(t, m.confirm.Active)
	require.Equal(t, confirmAccel, m.confirm.ID)
	assert.Equal(t, "Action b", m.accelOwner)
	assert.Contains(t, m.View(), "Ctrl+Shift+B")

	m, _ = press(m, "y")
	assert.False(t, m.confirm.Active)
	assert.Equal(t, "<Primary><Shift>b", m.rows[0].Accel)
	assert.Equal(t, "", m.rows[2].Accel, "previous owner loses the shortcut")
	assert.True(t, ed.NeedsSaved())
}

func TestAccelConflictDeclined(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m, _ = press(m, "ctrl+k", "<Primary><Shift>b", "enter", "n")
	assert.False(t, m.confirm.Active)
	assert.Equal(t, "", m.rows[0].Accel)
	assert.Equal(t, "<Primary><Shift>b", m.rows[2].Accel)
	assert.False(t, ed.NeedsSaved())
}

func TestReservedAccelRejected(t *testing.T) {
	m, ed, _ := newTestModel(t)
	m, _ = press(m, "ctrl+k", "Ctrl+C", "enter")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Copy")
	assert.False(t, ed.NeedsSaved())
}

func TestToggleDoesNotDirty(t *testing.T) {
	m, ed, _ := newTestModel(t)
	m, _ = press(m, " ")
	assert.False(t, m.rows[0].Enabled)
	assert.False(t, ed.NeedsSaved())
}

func TestQuitWithUnsavedChanges(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := press(m, "q")
	assert.NotNil(t, cmd, "clean editor quits at once")
	assert.True(t, m.quitting)

	m, _, _ = newTestModel(t)
	m, cmd = press(m, "s", "q")
	assert.Nil(t, cmd)
	assert.True(t, m.confirm.Active)
	assert.Equal(t, confirmQuit, m.confirm.ID)

	m, cmd = press(m, "n")
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestSaveAndDiscard(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m, _ = press(m, "-", "w")
	assert.False(t, ed.NeedsSaved())
	assert.False(t, m.statusErr)
	saved := ids(m)

	m, _ = press(m, "J", "u")
	assert.False(t, ed.NeedsSaved())
	assert.Equal(t, saved, ids(m))
}

func TestActionsChanged(t *testing.T) {
	m, ed, actionDir := newTestModel(t)
	writeAction(t, actionDir, "d")

	next, _ := m.Update(actionsChangedMsg{})
	m = next.(Model)
	assert.Contains(t, ids(m), "d.nemo_action", "clean editor reloads")

	writeAction(t, actionDir, "e")
	m, _ = press(m, "s")
	before := ids(m)
	next, _ = m.Update(actionsChangedMsg{})
	m = next.(Model)
	assert.Equal(t, before, ids(m), "unsaved edits are kept")
	assert.Contains(t, m.status, "Installed actions changed")
	assert.True(t, ed.NeedsSaved())
}

func TestDisabledChangedElsewhere(t *testing.T) {
	st := store.NewMemoryStore()
	m, ed, _ := newTestModelWithStore(t, st)
	m, _ = press(m, "s")
	before := ids(m)

	require.NoError(t, st.Set([]string{"a.nemo_action"}))
	next, _ := m.Update(disabledChangedMsg{})
	m = next.(Model)

	assert.False(t, m.rows[0].Enabled)
	assert.Equal(t, before, ids(m), "layout untouched")
	assert.True(t, ed.NeedsSaved())
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Menu Layout")
	assert.Contains(t, out, "Action a")
	assert.Contains(t, out, "Tools")
	assert.Contains(t, out, "Ctrl+Shift+B")
	assert.NotContains(t, out, "[unsaved]")

	m, _ = press(m, "s")
	assert.Contains(t, m.View(), "[unsaved]")
}
