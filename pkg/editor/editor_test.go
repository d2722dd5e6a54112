package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/store"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

type fixture struct {
	dir    string
	layout string
	store  *store.MemoryStore
	ed     *Editor
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newFixture installs one action per name and writes layoutJSON, if not empty.
func newFixture(t *testing.T, layoutJSON string, names ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	actionDir := filepath.Join(dir, "data", "nemo", "actions")
	for _, name := range names {
		writeFile(t, filepath.Join(actionDir, name+".nemo_action"),
			"[Nemo Action]\nName=Action "+name+"\nIcon-Name=icon-"+name+"\nExec=true\n")
	}
	f := &fixture{
		dir:    dir,
		layout: filepath.Join(dir, "config", "nemo", "actions-tree.json"),
		store:  store.NewMemoryStore(),
	}
	if layoutJSON != "" {
		writeFile(t, f.layout, layoutJSON)
	}
	f.ed = New(Config{LayoutFile: f.layout, ActionDirs: []string{actionDir}}, f.store, nil)
	require.NoError(t, f.ed.Reload())
	return f
}

func (f *fixture) lookup(t *testing.T, ref string) tree.Handle {
	t.Helper()
	h, err := f.ed.Lookup(ref)
	require.NoError(t, err)
	return h
}

func (f *fixture) ids() []string {
	var out []string
	for _, r := range f.ed.Rows() {
		pad := ""
		for i := 0; i < r.Depth; i++ {
			pad += "  "
		}
		out = append(out, pad+r.ID)
	}
	return out
}

const nestedLayout = `{"toplevel": [
  {"uuid": "a.nemo_action", "type": "action"},
  {"uuid": "Tools", "type": "submenu", "user-label": "Tools", "children": [
    {"uuid": "b.nemo_action", "type": "action", "accelerator": "<Primary><Shift>b"},
    {"uuid": "separator", "type": "separator"},
    {"uuid": "c.nemo_action", "type": "action"}
  ]}
]}`

func TestReloadAppendsUntracked(t *testing.T) {
	f := newFixture(t, `{"toplevel":[{"uuid":"a.nemo_action","type":"action"}]}`, "a", "b")

	rows := f.ed.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "a.nemo_action", rows[0].ID)
	assert.Equal(t, "b.nemo_action", rows[1].ID)
	assert.Equal(t, "Action b", rows[1].Label)
	assert.True(t, rows[0].Selected, "first row is selected after load")
	assert.False(t, f.ed.NeedsSaved())
}

func TestReloadInvalidLayoutIsReported(t *testing.T) {
	f := newFixture(t, `{"toplevel":[{"uuid":"a.nemo_action","type":"bogus"}]}`, "a", "b")
	report := f.ed.LastLoad()
	assert.True(t, report.Discarded)
	assert.Error(t, report.Reason)
	assert.Equal(t, []string{"a.nemo_action", "b.nemo_action"}, f.ids())
}

func TestDropIntoSeparatorRejected(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	before := f.ids()

	err := f.ed.Drop(f.lookup(t, "a.nemo_action"), f.lookup(t, "separator"), tree.IntoOrBefore)
	assert.ErrorIs(t, err, tree.ErrDropIntoLeaf)
	assert.Equal(t, before, f.ids())
	assert.False(t, f.ed.NeedsSaved())
}

func TestDropSelectsMovedNode(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	require.NoError(t, f.ed.Drop(f.lookup(t, "a.nemo_action"), f.lookup(t, "Tools"), tree.IntoOrAfter))

	assert.Equal(t, []string{"Tools", "  a.nemo_action", "  b.nemo_action", "  separator", "  c.nemo_action"}, f.ids())
	sel, ok := f.ed.Selected()
	require.True(t, ok)
	assert.Equal(t, f.lookup(t, "a.nemo_action"), sel)
	assert.True(t, f.ed.NeedsSaved())
}

func TestMoveUpDown(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	assert.False(t, f.ed.MoveUp(f.lookup(t, "a.nemo_action")))
	assert.False(t, f.ed.MoveDown(f.lookup(t, "c.nemo_action")))
	assert.False(t, f.ed.NeedsSaved())

	assert.True(t, f.ed.MoveUp(f.lookup(t, "b.nemo_action")))
	assert.Equal(t, []string{"a.nemo_action", "b.nemo_action", "Tools", "  separator", "  c.nemo_action"}, f.ids())
	assert.True(t, f.ed.NeedsSaved())
}

func TestReservedAcceleratorRejected(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	h := f.lookup(t, "a.nemo_action")

	err := f.ed.SetAccelerator(h, "Ctrl+C", nil)
	var reserved *accel.ReservedError
	require.ErrorAs(t, err, &reserved)
	assert.Equal(t, "Copy", reserved.Shortcut.Label)

	n, _ := f.ed.Model().Get(h)
	assert.Nil(t, n.Accelerator)
	assert.False(t, f.ed.NeedsSaved())
}

func TestReservedAcceleratorRejectedWhenAlreadyAssigned(t *testing.T) {
	f := newFixture(t, `{"toplevel": [
  {"uuid": "a.nemo_action", "type": "action", "accelerator": "<Primary>c"}
]}`, "a")
	h := f.lookup(t, "a.nemo_action")

	err := f.ed.SetAccelerator(h, "<Primary>c", nil)
	var reserved *accel.ReservedError
	require.ErrorAs(t, err, &reserved)
	assert.Equal(t, "Copy", reserved.Shortcut.Label)
	assert.False(t, f.ed.NeedsSaved())
}

func TestAcceleratorConflict(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	a := f.lookup(t, "a.nemo_action")
	b := f.lookup(t, "b.nemo_action")

	var asked string
	err := f.ed.SetAccelerator(a, "Ctrl+Shift+B", func(owner string) bool {
		asked = owner
		return false
	})
	assert.ErrorIs(t, err, ErrAccelKept)
	assert.Equal(t, "Action b", asked)
	na, _ := f.ed.Model().Get(a)
	nb, _ := f.ed.Model().Get(b)
	assert.Nil(t, na.Accelerator)
	assert.Equal(t, "<Primary><Shift>b", nb.Accel())
	assert.False(t, f.ed.NeedsSaved())

	require.NoError(t, f.ed.SetAccelerator(a, "Ctrl+Shift+B", func(string) bool { return true }))
	assert.Equal(t, "<Primary><Shift>b", na.Accel())
	assert.Nil(t, nb.Accelerator)
	assert.True(t, f.ed.NeedsSaved())

	// same value again is a no-op, no confirmation needed
	require.NoError(t, f.ed.SetAccelerator(a, "<Control><Shift>b", nil))

	require.NoError(t, f.ed.ClearAccelerator(a))
	assert.Nil(t, na.Accelerator)

	assert.Error(t, f.ed.SetAccelerator(a, "<Hyperdrive>x", nil))
}

func TestRemoveSubmenuPromotesChildren(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c", "d")
	tools := f.lookup(t, "Tools")
	require.True(t, f.ed.Select(tools))
	require.NoError(t, f.ed.RemoveSelected())

	assert.Equal(t, []string{"a.nemo_action", "b.nemo_action", "separator", "c.nemo_action", "d.nemo_action"}, f.ids())
	sel, ok := f.ed.Selected()
	require.True(t, ok)
	assert.Equal(t, f.lookup(t, "b.nemo_action"), sel)
	assert.True(t, f.ed.NeedsSaved())
	require.NoError(t, f.ed.Model().Check())
}

func TestRemoveRules(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	assert.ErrorIs(t, f.ed.Remove(f.lookup(t, "a.nemo_action")), ErrNotRemovable)
	assert.False(t, f.ed.NeedsSaved())

	require.NoError(t, f.ed.Remove(f.lookup(t, "separator")))
	assert.Equal(t, []string{"a.nemo_action", "Tools", "  b.nemo_action", "  c.nemo_action"}, f.ids())
	sel, _ := f.ed.Selected()
	assert.Equal(t, f.lookup(t, "c.nemo_action"), sel)
}

func TestInsertNew(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")

	require.True(t, f.ed.Select(f.lookup(t, "a.nemo_action")))
	h, err := f.ed.InsertSubmenu()
	require.NoError(t, err)
	n, _ := f.ed.Model().Get(h)
	assert.Equal(t, NewSubmenuLabel, n.ID)
	assert.Equal(t, NewSubmenuLabel, n.Label())

	// the new submenu is selected, so the separator goes inside it
	_, err = f.ed.InsertSeparator()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a.nemo_action", "New submenu", "  separator",
		"Tools", "  b.nemo_action", "  separator", "  c.nemo_action",
	}, f.ids())
	assert.True(t, f.ed.NeedsSaved())
}

func TestEditOverrides(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	tools := f.lookup(t, "Tools")
	a := f.lookup(t, "a.nemo_action")

	require.NoError(t, f.ed.SetLabel(tools, "Utilities"))
	n, _ := f.ed.Model().Get(tools)
	assert.Equal(t, "Utilities", n.ID)
	assert.Equal(t, "Utilities", n.Label())

	require.NoError(t, f.ed.SetLabel(a, "Open here"))
	na, _ := f.ed.Model().Get(a)
	assert.Equal(t, "a.nemo_action", na.ID)
	assert.Equal(t, "Open here", na.Label())
	require.NoError(t, f.ed.SetLabel(a, ""))
	assert.Nil(t, na.UserLabel)
	assert.Equal(t, "Action a", na.Label())

	require.NoError(t, f.ed.ClearIcon(a))
	assert.Equal(t, "", na.Icon())
	require.NotNil(t, na.UserIcon)
	require.NoError(t, f.ed.OriginalIcon(a))
	assert.Nil(t, na.UserIcon)
	assert.Equal(t, "icon-a", na.Icon())
	require.NoError(t, f.ed.SetIcon(a, "folder"))
	assert.Equal(t, "folder", na.Icon())

	assert.ErrorIs(t, f.ed.OriginalIcon(tools), ErrNotAction)
	assert.ErrorIs(t, f.ed.SetLabel(f.lookup(t, "separator"), "x"), ErrNotEditable)
}

func TestToggleEnabledWritesStoreOnly(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	b := f.lookup(t, "b.nemo_action")

	require.NoError(t, f.ed.ToggleEnabled(b))
	ids, _ := f.store.Get()
	assert.Equal(t, []string{"b.nemo_action"}, ids)
	assert.False(t, f.ed.NeedsSaved())

	assert.ErrorIs(t, f.ed.SetLabel(b, "nope"), ErrNotEditable)
	assert.ErrorIs(t, f.ed.ToggleEnabled(f.lookup(t, "Tools")), ErrNotAction)

	f.ed.ApplyDisabled([]string{"a.nemo_action"})
	na, _ := f.ed.Model().Get(f.lookup(t, "a.nemo_action"))
	nb, _ := f.ed.Model().Get(b)
	assert.False(t, na.Enabled)
	assert.True(t, nb.Enabled)
}

func TestRefreshDisabledKeepsEdits(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	a := f.lookup(t, "a.nemo_action")
	require.NoError(t, f.ed.SetLabel(a, "Alpha"))

	// another program disables c
	require.NoError(t, f.store.Set([]string{"c.nemo_action"}))
	require.NoError(t, f.ed.RefreshDisabled())

	nc, _ := f.ed.Model().Get(f.lookup(t, "c.nemo_action"))
	assert.False(t, nc.Enabled)
	na, _ := f.ed.Model().Get(a)
	assert.Equal(t, "Alpha", na.Label())
	assert.True(t, f.ed.NeedsSaved())
	assert.Empty(t, f.ed.StorePath())
}

func TestInstalledIsACopy(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	pool := f.ed.Installed()
	assert.Equal(t, 3, pool.Len())
	_, ok := pool.Take("a.nemo_action")
	require.True(t, ok)
	assert.Equal(t, 3, f.ed.Installed().Len())
}

type failingStore struct{ store.MemoryStore }

func (s *failingStore) Set([]string) error { return errors.New("disk full") }

func TestToggleEnabledRevertsOnStoreError(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	f.ed.store = &failingStore{}
	a := f.lookup(t, "a.nemo_action")
	assert.Error(t, f.ed.ToggleEnabled(a))
	n, _ := f.ed.Model().Get(a)
	assert.True(t, n.Enabled)
}

func TestSaveDiscardDefault(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c", "d")
	require.NoError(t, f.ed.SetEnabled(f.lookup(t, "d.nemo_action"), false))
	require.True(t, f.ed.MoveDown(f.lookup(t, "a.nemo_action")))
	want := f.ids()
	require.True(t, f.ed.NeedsSaved())

	require.NoError(t, f.ed.Save())
	assert.False(t, f.ed.NeedsSaved())
	_, report := layout.Load(f.layout)
	assert.False(t, report.Discarded)

	require.NoError(t, f.ed.Reload())
	assert.Equal(t, want, f.ids())
	ids, _ := f.store.Get()
	assert.Equal(t, []string{"d.nemo_action"}, ids)

	require.NoError(t, f.ed.DefaultLayout())
	assert.True(t, f.ed.NeedsSaved())
	assert.Equal(t, []string{"a.nemo_action", "b.nemo_action", "c.nemo_action", "d.nemo_action"}, f.ids())

	require.NoError(t, f.ed.Discard())
	assert.False(t, f.ed.NeedsSaved())
	assert.Equal(t, want, f.ids())
}

func TestLookup(t *testing.T) {
	f := newFixture(t, nestedLayout, "a", "b", "c")
	h, err := f.ed.Lookup("1/2")
	require.NoError(t, err)
	assert.Equal(t, f.lookup(t, "c.nemo_action"), h)

	_, err = f.ed.Lookup("9")
	assert.ErrorIs(t, err, ErrNoSuchNode)
	_, err = f.ed.Lookup("missing.nemo_action")
	assert.ErrorIs(t, err, ErrNoSuchNode)
	_, err = f.ed.Lookup("")
	assert.ErrorIs(t, err, ErrNoSuchNode)

	rows := f.ed.Rows()
	assert.Equal(t, "1/2", rows[4].Path)
	assert.Equal(t, 1, rows[4].Depth)
	assert.Equal(t, layout.TypeSeparator, rows[3].Type)
	assert.Equal(t, "<Primary><Shift>b", rows[2].Accel)
}
