package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// Row is the flat, display ready view of one node.
type Row struct {
	Handle   tree.Handle
	Path     string
	Depth    int
	ID       string
	Type     layout.NodeType
	Label    string
	Icon     string
	Accel    string
	Enabled  bool
	Custom   bool
	Selected bool
}

// Rows lists every node in pre-order with submenus expanded.
func (e *Editor) Rows() []Row {
	type item struct {
		h     tree.Handle
		depth int
	}
	var out []Row
	roots := e.model.Roots()
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{roots[i], 0})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, _ := e.model.Get(it.h)
		out = append(out, Row{
			Handle:   it.h,
			Path:     tree.FormatPath(e.model.PathOf(it.h)),
			Depth:    it.depth,
			ID:       n.ID,
			Type:     n.Type,
			Label:    n.Label(),
			Icon:     n.Icon(),
			Accel:    n.Accel(),
			Enabled:  n.Enabled,
			Custom:   n.UserLabel != nil,
			Selected: it.h == e.selected,
		})

		kids := e.model.Children(it.h)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{kids[i], it.depth + 1})
		}
	}
	return out
}

// Lookup resolves a node reference: an index path such as "2/0", or an
// identifier, matched in row order.
func (e *Editor) Lookup(ref string) (tree.Handle, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return tree.Root, fmt.Errorf("%w: empty reference", ErrNoSuchNode)
	}
	if path, ok := parsePath(ref); ok {
		if h, ok := e.model.AtPath(path); ok {
			return h, nil
		}
		return tree.Root, fmt.Errorf("%w: %s", ErrNoSuchNode, ref)
	}
	h, ok := e.model.Find(func(_ tree.Handle, n *tree.Node) bool { return n.ID == ref })
	if !ok {
		return tree.Root, fmt.Errorf("%w: %s", ErrNoSuchNode, ref)
	}
	return h, nil
}

func parsePath(ref string) ([]int, bool) {
	parts := strings.Split(ref, "/")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(p)
		if err != nil || i < 0 {
			return nil, false
		}
		path = append(path, i)
	}
	return path, true
}
