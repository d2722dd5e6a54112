package tree

import (
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-action-layout/pkg/actions"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
)

// Build materializes doc against the installed actions in pool. Actions the
// document names are taken from the pool; those no longer installed are
// dropped. Whatever is left in the pool is appended at the top level,
// enabled ones first. pool is consumed.
func Build(doc *layout.Document, pool *actions.Pool, disabled []string, log *logrus.Entry) *Model {
	m := New(log)
	m.Load(doc, pool, disabled)
	return m
}

// Load replaces the contents of m the way Build does. Handles from before
// the call go stale.
func (m *Model) Load(doc *layout.Document, pool *actions.Pool, disabled []string) {
	m.Clear()
	off := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		off[id] = true
	}

	type frame struct {
		parent Handle
		nodes  []layout.Node
		next   int
	}
	stack := []*frame{{parent: Root, nodes: doc.Toplevel}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.nodes) {
			stack = stack[:len(stack)-1]
			continue
		}
		ln := f.nodes[f.next]
		f.next++

		n := Node{
			ID:          ln.UUID,
			Type:        ln.Type,
			UserLabel:   ln.UserLabel,
			UserIcon:    ln.UserIcon,
			Accelerator: ln.Accelerator,
			Enabled:     true,
		}
		switch ln.Type {
		case layout.TypeAction:
			rec, ok := pool.Take(ln.UUID)
			if !ok {
				m.log.WithField("id", ln.UUID).Info("action no longer installed, dropping from layout")
				continue
			}
			n.Record = rec
			n.Enabled = !off[ln.UUID]
			m.insertAt(f.parent, len(*m.siblings(f.parent)), n)
		case layout.TypeSeparator:
			n.ID = layout.SeparatorID
			m.insertAt(f.parent, len(*m.siblings(f.parent)), n)
		case layout.TypeSubmenu:
			h := m.insertAt(f.parent, len(*m.siblings(f.parent)), n)
			if len(ln.Children) > 0 {
				stack = append(stack, &frame{parent: h, nodes: ln.Children})
			}
		}
	}

	var enabled, disabledRecs []*actions.Record
	for _, rec := range pool.Remaining() {
		if off[rec.ID] {
			disabledRecs = append(disabledRecs, rec)
		} else {
			enabled = append(enabled, rec)
		}
	}
	for _, rec := range append(enabled, disabledRecs...) {
		pool.Take(rec.ID)
		m.insertAt(Root, len(m.roots), Node{
			ID:      rec.ID,
			Type:    layout.TypeAction,
			Record:  rec,
			Enabled: !off[rec.ID],
		})
	}
	if n := len(enabled) + len(disabledRecs); n > 0 {
		m.log.WithField("count", n).Debug("appended untracked actions")
	}

	m.Renumber()
}
