package tree

import (
	"fmt"

	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

// Serialize flattens the model into a layout document. A uuid repeated
// within one sibling group gets the lowest free "-N" suffix from its second
// occurrence on, so two entries can never collapse into one. Separators all
// share one identifier and are left alone.
func Serialize(m *Model) *layout.Document {
	doc := layout.Flat()

	type frame struct {
		kids []Handle
		out  *[]layout.Node
	}
	stack := []frame{{m.roots, &doc.Toplevel}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// own ids of the group are reserved so a suffix never takes one
		reserved := make(map[string]bool, len(f.kids))
		for _, h := range f.kids {
			reserved[m.node(h).ID] = true
		}
		emitted := make(map[string]bool, len(f.kids))
		next := make(map[string]int)

		nodes := make([]layout.Node, len(f.kids))
		for i, h := range f.kids {
			n := m.node(h)
			id := n.ID
			if n.Type != layout.TypeSeparator {
				if emitted[id] {
					for {
						next[n.ID]++
						id = fmt.Sprintf("%s-%d", n.ID, next[n.ID])
						if !emitted[id] && !reserved[id] {
							break
						}
					}
				}
				emitted[id] = true
			}

			nodes[i] = layout.Node{
				UUID:        id,
				Type:        n.Type,
				UserLabel:   n.UserLabel,
				UserIcon:    n.UserIcon,
				Accelerator: n.Accelerator,
			}
			if n.IsSubmenu() {
				nodes[i].Children = []layout.Node{}
			}
		}
		*f.out = nodes

		for i, h := range f.kids {
			if kids := m.node(h).children; len(kids) > 0 {
				stack = append(stack, frame{kids, &nodes[i].Children})
			}
		}
	}
	return doc
}
