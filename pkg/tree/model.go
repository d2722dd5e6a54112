package tree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-action-layout/pkg/actions"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

var (
	// ErrStaleHandle is returned for handles whose node has been removed.
	ErrStaleHandle = errors.New("stale node handle")
	// ErrNotContainer is returned when inserting children under a node that
	// is not a submenu.
	ErrNotContainer = errors.New("node cannot hold children")
)

// Handle addresses a node in a Model. The zero Handle is the implicit root.
// A handle goes stale once its node is removed, even if the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// Root is the implicit container holding the top level nodes.
var Root Handle

// IsRoot reports whether h is the implicit root.
func (h Handle) IsRoot() bool { return h == Root }

func (h Handle) String() string {
	if h.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

// Node is one row of the menu. Structure fields are private; use the Model
// to navigate and change them.
type Node struct {
	ID          string
	Type        layout.NodeType
	UserLabel   *string
	UserIcon    *string
	Accelerator *string
	// Record is the installed action backing an action node.
	Record  *actions.Record
	Enabled bool
	// Rank is the position among siblings as of the last Renumber.
	Rank int

	parent   Handle
	children []Handle
}

// IsSubmenu reports whether the node can hold children.
func (n *Node) IsSubmenu() bool { return n.Type == layout.TypeSubmenu }

// Label is the text shown for the node.
func (n *Node) Label() string {
	switch {
	case n.Type == layout.TypeSeparator:
		return ""
	case n.UserLabel != nil && *n.UserLabel != "":
		return *n.UserLabel
	case n.Record != nil:
		return n.Record.DisplayName()
	case n.Type == layout.TypeSubmenu:
		return n.ID
	}
	return "Unknown"
}

// Icon is the icon shown for the node: the user override when set, the
// action's own icon otherwise. "" means no icon.
func (n *Node) Icon() string {
	if n.UserIcon != nil {
		return *n.UserIcon
	}
	if n.Record != nil {
		return n.Record.IconString()
	}
	return ""
}

// Accel returns the assigned accelerator or "".
func (n *Node) Accel() string {
	if n.Accelerator == nil {
		return ""
	}
	return *n.Accelerator
}

// detached returns a copy of n without structure, ready for insertion.
func (n *Node) detached() Node {
	c := *n
	c.parent = Root
	c.children = nil
	c.Rank = 0
	return c
}

type slot struct {
	gen  uint32
	node *Node
}

// Model is the in-memory menu tree. Nodes live in an arena and are addressed
// by Handle. A Model is not safe for concurrent use.
type Model struct {
	slots []slot
	free  []uint32
	roots []Handle
	live  int
	log   *logrus.Entry
}

func New(log *logrus.Entry) *Model {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	// slot 0 is reserved so that the zero Handle never names a node
	return &Model{slots: make([]slot, 1), log: log}
}

func (m *Model) alloc(n Node) Handle {
	node := &n
	if k := len(m.free); k > 0 {
		idx := m.free[k-1]
		m.free = m.free[:k-1]
		m.slots[idx].node = node
		m.live++
		return Handle{index: idx, gen: m.slots[idx].gen}
	}
	m.slots = append(m.slots, slot{gen: 1, node: node})
	m.live++
	return Handle{index: uint32(len(m.slots) - 1), gen: 1}
}

func (m *Model) release(h Handle) {
	s := &m.slots[h.index]
	s.node = nil
	s.gen++
	m.free = append(m.free, h.index)
	m.live--
}

func (m *Model) node(h Handle) *Node {
	if h.IsRoot() || int(h.index) >= len(m.slots) {
		return nil
	}
	s := m.slots[h.index]
	if s.node == nil || s.gen != h.gen {
		return nil
	}
	return s.node
}

// Valid reports whether h names a live node.
func (m *Model) Valid(h Handle) bool {
	return m.node(h) != nil
}

// Get returns the node for h. The pointer stays valid until the node is
// removed; callers may edit its exported fields.
func (m *Model) Get(h Handle) (*Node, bool) {
	n := m.node(h)
	return n, n != nil
}

// Len is the number of live nodes.
func (m *Model) Len() int { return m.live }

// Roots returns the top level handles in order.
func (m *Model) Roots() []Handle {
	return append([]Handle(nil), m.roots...)
}

// Children returns the children of h in order. Children(Root) equals Roots().
func (m *Model) Children(h Handle) []Handle {
	if h.IsRoot() {
		return m.Roots()
	}
	n := m.node(h)
	if n == nil {
		return nil
	}
	return append([]Handle(nil), n.children...)
}

// Parent returns the parent of h, Root for top level nodes.
func (m *Model) Parent(h Handle) Handle {
	if n := m.node(h); n != nil {
		return n.parent
	}
	return Root
}

// siblings returns the child list that holds h's siblings.
func (m *Model) siblings(parent Handle) *[]Handle {
	if parent.IsRoot() {
		return &m.roots
	}
	return &m.node(parent).children
}

// IndexOf is h's position among its siblings, or -1.
func (m *Model) IndexOf(h Handle) int {
	n := m.node(h)
	if n == nil {
		return -1
	}
	for i, s := range *m.siblings(n.parent) {
		if s == h {
			return i
		}
	}
	return -1
}

// PathOf returns the index path from the root to h, nil for stale handles.
func (m *Model) PathOf(h Handle) []int {
	if m.node(h) == nil {
		return nil
	}
	var rev []int
	for cur := h; !cur.IsRoot(); cur = m.Parent(cur) {
		rev = append(rev, m.IndexOf(cur))
	}
	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// AtPath resolves an index path.
func (m *Model) AtPath(path []int) (Handle, bool) {
	if len(path) == 0 {
		return Root, false
	}
	cur := Root
	for _, i := range path {
		kids := *m.siblings(cur)
		if i < 0 || i >= len(kids) {
			return Root, false
		}
		cur = kids[i]
	}
	return cur, true
}

// FormatPath renders an index path as "2/0".
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "/")
}

func (m *Model) container(parent Handle) error {
	if parent.IsRoot() {
		return nil
	}
	n := m.node(parent)
	if n == nil {
		return ErrStaleHandle
	}
	if !n.IsSubmenu() {
		return fmt.Errorf("%w: %s", ErrNotContainer, n.ID)
	}
	return nil
}

func (m *Model) insertAt(parent Handle, idx int, n Node) Handle {
	n.parent = parent
	n.children = nil
	h := m.alloc(n)
	list := m.siblings(parent)
	*list = append(*list, Root)
	copy((*list)[idx+1:], (*list)[idx:])
	(*list)[idx] = h
	return h
}

// InsertFirst places n as the first child of parent.
func (m *Model) InsertFirst(parent Handle, n Node) (Handle, error) {
	if err := m.container(parent); err != nil {
		return Root, err
	}
	return m.insertAt(parent, 0, n), nil
}

// InsertLast places n as the last child of parent.
func (m *Model) InsertLast(parent Handle, n Node) (Handle, error) {
	if err := m.container(parent); err != nil {
		return Root, err
	}
	return m.insertAt(parent, len(*m.siblings(parent)), n), nil
}

// InsertBefore places n right before sibling, under the same parent.
func (m *Model) InsertBefore(sibling Handle, n Node) (Handle, error) {
	idx := m.IndexOf(sibling)
	if idx < 0 {
		return Root, ErrStaleHandle
	}
	return m.insertAt(m.Parent(sibling), idx, n), nil
}

// InsertAfter places n right after sibling, under the same parent.
func (m *Model) InsertAfter(sibling Handle, n Node) (Handle, error) {
	idx := m.IndexOf(sibling)
	if idx < 0 {
		return Root, ErrStaleHandle
	}
	return m.insertAt(m.Parent(sibling), idx+1, n), nil
}

// Remove deletes h and its whole subtree.
func (m *Model) Remove(h Handle) error {
	idx := m.IndexOf(h)
	if idx < 0 {
		return ErrStaleHandle
	}
	list := m.siblings(m.Parent(h))
	*list = append((*list)[:idx], (*list)[idx+1:]...)

	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, m.node(cur).children...)
		m.release(cur)
	}
	return nil
}

// Clear drops every node. Outstanding handles go stale.
func (m *Model) Clear() {
	for i := 1; i < len(m.slots); i++ {
		if m.slots[i].node != nil {
			m.release(Handle{index: uint32(i), gen: m.slots[i].gen})
		}
	}
	m.roots = nil
}

// Check verifies the structural invariants of the model.
func (m *Model) Check() error {
	seen := make(map[Handle]bool, m.live)
	type frame struct {
		parent Handle
		kids   []Handle
	}
	stack := []frame{{Root, m.roots}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, h := range f.kids {
			n := m.node(h)
			if n == nil {
				return fmt.Errorf("%s under %s: %w", h, f.parent, ErrStaleHandle)
			}
			if seen[h] {
				return fmt.Errorf("%s reachable twice", h)
			}
			seen[h] = true
			if n.parent != f.parent {
				return fmt.Errorf("%s: parent link %s, found under %s", h, n.parent, f.parent)
			}
			if len(n.children) > 0 {
				if !n.IsSubmenu() {
					return fmt.Errorf("%s: %s node has children", h, n.Type)
				}
				stack = append(stack, frame{h, n.children})
			}
		}
	}
	if len(seen) != m.live {
		return fmt.Errorf("%d live nodes, %d reachable", m.live, len(seen))
	}
	return nil
}

// DisabledIDs lists disabled action identifiers in pre-order.
func (m *Model) DisabledIDs() []string {
	ids := []string{}
	stack := reversed(m.roots)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := m.node(h)
		if n.Type == layout.TypeAction && !n.Enabled {
			ids = append(ids, n.ID)
		}
		stack = append(stack, reversed(n.children)...)
	}
	return ids
}

func reversed(hs []Handle) []Handle {
	out := make([]Handle, len(hs))
	for i, h := range hs {
		out[len(hs)-1-i] = h
	}
	return out
}
