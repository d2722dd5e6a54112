package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-action-layout/pkg/actions"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

func pool(ids ...string) *actions.Pool {
	p := actions.NewPool()
	for _, id := range ids {
		p.Put(&actions.Record{ID: id, Path: "/usr/share/nemo/actions/" + id, Name: "Name_" + id, Active: true})
	}
	return p
}

func action(id string) layout.Node {
	return layout.Node{UUID: id, Type: layout.TypeAction}
}

func submenu(id string, kids ...layout.Node) layout.Node {
	return layout.Node{UUID: id, Type: layout.TypeSubmenu, UserLabel: layout.StringPtr(id), Children: kids}
}

func separator() layout.Node {
	return layout.Node{UUID: layout.SeparatorID, Type: layout.TypeSeparator}
}

// rows lists node ids in pre-order, indented two spaces per level.
func rows(m *Model) []string {
	var out []string
	m.Walk(func(h Handle, depth int) WalkAction {
		n, _ := m.Get(h)
		prefix := ""
		for i := 0; i < depth; i++ {
			prefix += "  "
		}
		out = append(out, prefix+n.ID)
		return Continue
	})
	return out
}

func find(t *testing.T, m *Model, id string) Handle {
	t.Helper()
	h, ok := m.Find(func(_ Handle, n *Node) bool { return n.ID == id })
	require.True(t, ok, "node %s", id)
	return h
}

// sample builds:
//
//	a
//	Tools
//	  b
//	  separator
//	  Deep
//	    c
//	d
func sample(t *testing.T) *Model {
	t.Helper()
	doc := &layout.Document{Toplevel: []layout.Node{
		action("a"),
		submenu("Tools", action("b"), separator(), submenu("Deep", action("c"))),
		action("d"),
	}}
	m := Build(doc, pool("a", "b", "c", "d"), nil, nil)
	require.NoError(t, m.Check())
	return m
}

func TestBuildUntrackedAppended(t *testing.T) {
	doc := &layout.Document{Toplevel: []layout.Node{action("a.nemo_action")}}
	m := Build(doc, pool("a.nemo_action", "b.nemo_action"), nil, nil)

	roots := m.Roots()
	require.Len(t, roots, 2)
	a, _ := m.Get(roots[0])
	b, _ := m.Get(roots[1])
	assert.Equal(t, "a.nemo_action", a.ID)
	assert.Equal(t, "b.nemo_action", b.ID)
	assert.True(t, b.Enabled)
	assert.NotNil(t, b.Record)
}

func TestBuildDropsMissingAndOrdersDisabled(t *testing.T) {
	doc := &layout.Document{Toplevel: []layout.Node{
		action("gone"),
		submenu("Menu", action("x"), action("gone-too")),
	}}
	m := Build(doc, pool("p", "q", "x", "r"), []string{"q", "x"}, nil)

	assert.Equal(t, []string{"Menu", "  x", "p", "r", "q"}, rows(m))
	x, _ := m.Get(find(t, m, "x"))
	assert.False(t, x.Enabled)
	assert.Equal(t, []string{"x", "q"}, m.DisabledIDs())
	require.NoError(t, m.Check())
}

func TestBuildNormalizesSeparators(t *testing.T) {
	doc := &layout.Document{Toplevel: []layout.Node{
		{UUID: "whatever", Type: layout.TypeSeparator},
	}}
	m := Build(doc, actions.NewPool(), nil, nil)
	n, _ := m.Get(m.Roots()[0])
	assert.Equal(t, layout.SeparatorID, n.ID)
}

func TestBuildTakesDuplicateOnce(t *testing.T) {
	doc := &layout.Document{Toplevel: []layout.Node{action("a"), submenu("S", action("a"))}}
	m := Build(doc, pool("a"), nil, nil)
	assert.Equal(t, []string{"a", "S"}, rows(m))
}

func TestPathsAndLookup(t *testing.T) {
	m := sample(t)
	c := find(t, m, "c")
	assert.Equal(t, []int{1, 2, 0}, m.PathOf(c))
	assert.Equal(t, "1/2/0", FormatPath(m.PathOf(c)))

	h, ok := m.AtPath([]int{1, 2, 0})
	require.True(t, ok)
	assert.Equal(t, c, h)

	_, ok = m.AtPath([]int{1, 7})
	assert.False(t, ok)
	_, ok = m.AtPath(nil)
	assert.False(t, ok)

	assert.Equal(t, find(t, m, "Deep"), m.Parent(c))
	assert.True(t, m.Parent(find(t, m, "a")).IsRoot())
	assert.Equal(t, 7, m.Len())
}

func TestInsertIntoLeafRejected(t *testing.T) {
	m := sample(t)
	_, err := m.InsertFirst(find(t, m, "a"), Node{ID: "x", Type: layout.TypeAction})
	assert.ErrorIs(t, err, ErrNotContainer)
	_, err = m.InsertLast(find(t, m, "Tools"), Node{ID: "x", Type: layout.TypeAction})
	assert.NoError(t, err)
	assert.NoError(t, m.Check())
}

func TestRemoveMakesHandlesStale(t *testing.T) {
	m := sample(t)
	tools := find(t, m, "Tools")
	b := find(t, m, "b")
	require.NoError(t, m.Remove(tools))

	assert.False(t, m.Valid(tools))
	assert.False(t, m.Valid(b))
	assert.ErrorIs(t, m.Remove(tools), ErrStaleHandle)
	assert.Equal(t, []string{"a", "d"}, rows(m))
	assert.Equal(t, 2, m.Len())

	// reused slots must not revive old handles
	h, err := m.InsertLast(Root, Node{ID: "new", Type: layout.TypeAction})
	require.NoError(t, err)
	assert.NotEqual(t, tools, h)
	assert.NotEqual(t, b, h)
	assert.False(t, m.Valid(b))
	assert.NoError(t, m.Check())
}

func TestClear(t *testing.T) {
	m := sample(t)
	a := find(t, m, "a")
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Roots())
	assert.False(t, m.Valid(a))
	assert.NoError(t, m.Check())
}

func TestWalkSkipAndStop(t *testing.T) {
	m := sample(t)
	var seen []string
	m.Walk(func(h Handle, _ int) WalkAction {
		n, _ := m.Get(h)
		seen = append(seen, n.ID)
		switch n.ID {
		case "Tools":
			return SkipChildren
		case "d":
			return Stop
		}
		return Continue
	})
	assert.Equal(t, []string{"a", "Tools", "d"}, seen)
}

func TestRenumberIdempotent(t *testing.T) {
	m := sample(t)
	m.Renumber()
	first := map[Handle]int{}
	for _, h := range m.Handles() {
		n, _ := m.Get(h)
		first[h] = n.Rank
		assert.Equal(t, m.IndexOf(h), n.Rank)
	}
	m.Renumber()
	for _, h := range m.Handles() {
		n, _ := m.Get(h)
		assert.Equal(t, first[h], n.Rank)
	}
}

func TestHandlesUnique(t *testing.T) {
	m := sample(t)
	ops := []func(){
		func() { MoveDown(m, find(t, m, "a")) },
		func() { MoveDown(m, find(t, m, "a")) },
		func() { MoveUp(m, find(t, m, "c")) },
		func() { _, _ = Drop(m, find(t, m, "Deep"), find(t, m, "d"), After) },
		func() { _ = Promote(m, find(t, m, "Tools")) },
	}
	for _, op := range ops {
		op()
		seen := map[Handle]bool{}
		for _, h := range m.Handles() {
			assert.False(t, seen[h], "duplicate handle %s", h)
			seen[h] = true
		}
		require.NoError(t, m.Check())
	}
}
