package tree

// WalkAction tells Walk how to continue after visiting a node.
type WalkAction int

const (
	Continue WalkAction = iota
	// SkipChildren continues with the next sibling.
	SkipChildren
	Stop
)

// Walk visits every node in pre-order, the order rows appear with every
// submenu expanded. depth is 0 for top level nodes.
func (m *Model) Walk(fn func(h Handle, depth int) WalkAction) {
	type item struct {
		h     Handle
		depth int
	}
	stack := make([]item, 0, len(m.roots))
	for i := len(m.roots) - 1; i >= 0; i-- {
		stack = append(stack, item{m.roots[i], 0})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch fn(it.h, it.depth) {
		case Stop:
			return
		case SkipChildren:
			continue
		}
		kids := m.node(it.h).children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{kids[i], it.depth + 1})
		}
	}
}

// Find returns the first node in pre-order accepted by match.
func (m *Model) Find(match func(h Handle, n *Node) bool) (Handle, bool) {
	for _, h := range m.Handles() {
		if match(h, m.node(h)) {
			return h, true
		}
	}
	return Root, false
}

// Handles returns every handle in pre-order.
func (m *Model) Handles() []Handle {
	out := make([]Handle, 0, m.live)
	stack := reversed(m.roots)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, h)
		stack = append(stack, reversed(m.node(h).children)...)
	}
	return out
}

// Renumber sets Rank to the sibling position of every node.
func (m *Model) Renumber() {
	for i, h := range m.roots {
		m.node(h).Rank = i
	}
	m.Walk(func(h Handle, _ int) WalkAction {
		for i, c := range m.node(h).children {
			m.node(c).Rank = i
		}
		return Continue
	})
}

// lastAtLevel descends through last children to the deepest last node
// under h, or h itself when it has no children.
func (m *Model) lastAtLevel(h Handle) Handle {
	for {
		kids := m.node(h).children
		if len(kids) == 0 {
			return h
		}
		h = kids[len(kids)-1]
	}
}

// nextSibling returns the sibling after h.
func (m *Model) nextSibling(h Handle) (Handle, bool) {
	list := *m.siblings(m.Parent(h))
	idx := m.IndexOf(h)
	if idx < 0 || idx+1 >= len(list) {
		return Root, false
	}
	return list[idx+1], true
}

// prevSibling returns the sibling before h.
func (m *Model) prevSibling(h Handle) (Handle, bool) {
	idx := m.IndexOf(h)
	if idx <= 0 {
		return Root, false
	}
	return (*m.siblings(m.Parent(h)))[idx-1], true
}

// isAncestor reports whether a is a strict ancestor of h.
func (m *Model) isAncestor(a, h Handle) bool {
	for cur := m.Parent(h); !cur.IsRoot(); cur = m.Parent(cur) {
		if cur == a {
			return true
		}
	}
	return false
}
