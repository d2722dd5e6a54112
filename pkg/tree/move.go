package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrDropOnSelf rejects a drop onto the dragged node or onto one of its
	// ancestors.
	ErrDropOnSelf = errors.New("cannot drop a node onto itself or its ancestors")
	// ErrDropIntoDescendant rejects a drop inside the dragged subtree.
	ErrDropIntoDescendant = errors.New("cannot drop a node inside itself")
	// ErrDropIntoLeaf rejects dropping into an action or separator.
	ErrDropIntoLeaf = errors.New("only submenus can contain other nodes")
)

// DropPosition is where a dragged node lands relative to the target row.
type DropPosition int

const (
	Before DropPosition = iota
	After
	IntoOrBefore
	IntoOrAfter
)

func (p DropPosition) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	case IntoOrBefore:
		return "into-or-before"
	case IntoOrAfter:
		return "into-or-after"
	}
	return fmt.Sprintf("DropPosition(%d)", int(p))
}

// ParseDropPosition accepts the names produced by String, plus "into".
func ParseDropPosition(s string) (DropPosition, error) {
	switch s {
	case "before":
		return Before, nil
	case "after":
		return After, nil
	case "into", "into-or-after":
		return IntoOrAfter, nil
	case "into-or-before":
		return IntoOrBefore, nil
	}
	return Before, fmt.Errorf("unknown drop position %q", s)
}

// placement inserts a detached node somewhere in the model.
type placement func(n Node) (Handle, error)

// Drop moves source relative to target. Everything is validated before the
// model is touched. The moved subtree gets fresh handles; the new handle of
// source is returned.
func Drop(m *Model, source, target Handle, pos DropPosition) (Handle, error) {
	if !m.Valid(source) || !m.Valid(target) {
		return Root, ErrStaleHandle
	}
	switch {
	case source == target, m.isAncestor(target, source):
		return Root, ErrDropOnSelf
	case m.isAncestor(source, target):
		return Root, ErrDropIntoDescendant
	}

	tn := m.node(target)
	into := pos == IntoOrBefore || pos == IntoOrAfter
	if into && !tn.IsSubmenu() {
		return Root, ErrDropIntoLeaf
	}

	var place placement
	switch {
	case tn.IsSubmenu() && (into || pos == After):
		place = func(n Node) (Handle, error) { return m.InsertFirst(target, n) }
	case pos == Before:
		place = func(n Node) (Handle, error) { return m.InsertBefore(target, n) }
	default:
		place = func(n Node) (Handle, error) { return m.InsertAfter(target, n) }
	}
	return relocate(m, source, place)
}

// MoveUp moves h one visible row up. It returns false when h is already the
// first row.
func MoveUp(m *Model, h Handle) (Handle, bool) {
	if !m.Valid(h) {
		return h, false
	}
	parent := m.Parent(h)

	var place placement
	if prev, ok := m.prevSibling(h); ok {
		target := m.lastAtLevel(prev)
		switch {
		case m.node(target).IsSubmenu():
			place = func(n Node) (Handle, error) { return m.InsertFirst(target, n) }
		case m.Parent(target) == parent:
			place = func(n Node) (Handle, error) { return m.InsertBefore(target, n) }
		default:
			place = func(n Node) (Handle, error) { return m.InsertAfter(target, n) }
		}
	} else if !parent.IsRoot() {
		place = func(n Node) (Handle, error) { return m.InsertBefore(parent, n) }
	} else {
		return h, false
	}

	moved, err := relocate(m, h, place)
	if err != nil {
		m.log.WithError(err).WithField("node", h).Warn("move up failed")
		return h, false
	}
	return moved, true
}

// MoveDown moves h one visible row down. It returns false when nothing
// follows h at any level.
func MoveDown(m *Model, h Handle) (Handle, bool) {
	if !m.Valid(h) {
		return h, false
	}

	target, ok := m.nextSibling(h)
	for cur := m.Parent(h); !ok && !cur.IsRoot(); cur = m.Parent(cur) {
		target, ok = m.nextSibling(cur)
	}
	if !ok {
		return h, false
	}

	var place placement
	if m.node(target).IsSubmenu() {
		place = func(n Node) (Handle, error) { return m.InsertFirst(target, n) }
	} else {
		place = func(n Node) (Handle, error) { return m.InsertAfter(target, n) }
	}

	moved, err := relocate(m, h, place)
	if err != nil {
		m.log.WithError(err).WithField("node", h).Warn("move down failed")
		return h, false
	}
	return moved, true
}

// CanMoveUp is false only for the first top level node.
func CanMoveUp(m *Model, h Handle) bool {
	return m.Valid(h) && !(len(m.roots) > 0 && m.roots[0] == h)
}

// CanMoveDown is false only for the last row in pre-order.
func CanMoveDown(m *Model, h Handle) bool {
	if !m.Valid(h) || len(m.roots) == 0 {
		return false
	}
	return m.lastAtLevel(m.roots[len(m.roots)-1]) != h
}

// relocate copies src and its subtree through place, then removes the
// original. Children are copied in order with fresh handles.
func relocate(m *Model, src Handle, place placement) (Handle, error) {
	moved, err := place(m.node(src).detached())
	if err != nil {
		return Root, err
	}

	type pair struct{ from, to Handle }
	stack := []pair{{src, moved}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range m.node(p.from).children {
			nh := m.insertAt(p.to, len(m.node(p.to).children), m.node(c).detached())
			stack = append(stack, pair{c, nh})
		}
	}

	if err := m.Remove(src); err != nil {
		return Root, fmt.Errorf("remove original: %w", err)
	}
	m.Renumber()
	return moved, nil
}

// Promote moves the children of submenu h, in order, to h's position in its
// parent and removes h.
func Promote(m *Model, h Handle) error {
	n := m.node(h)
	if n == nil {
		return ErrStaleHandle
	}
	for _, c := range append([]Handle(nil), n.children...) {
		if _, err := relocate(m, c, func(nn Node) (Handle, error) { return m.InsertBefore(h, nn) }); err != nil {
			return err
		}
	}
	if err := m.Remove(h); err != nil {
		return err
	}
	m.Renumber()
	return nil
}
