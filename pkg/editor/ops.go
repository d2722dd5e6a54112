package editor

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

// Drop moves source relative to target and selects it at its new place.
// A rejected drop changes nothing.
func (e *Editor) Drop(source, target tree.Handle, pos tree.DropPosition) error {
	moved, err := tree.Drop(e.model, source, target, pos)
	if err != nil {
		return err
	}
	e.selected = moved
	e.changed()
	return nil
}

// MoveUp moves h one row up. It reports false when h is already first.
func (e *Editor) MoveUp(h tree.Handle) bool {
	moved, ok := tree.MoveUp(e.model, h)
	if !ok {
		return false
	}
	e.selected = moved
	e.changed()
	return true
}

// MoveDown moves h one row down. It reports false when h is already last.
func (e *Editor) MoveDown(h tree.Handle) bool {
	moved, ok := tree.MoveDown(e.model, h)
	if !ok {
		return false
	}
	e.selected = moved
	e.changed()
	return true
}

// InsertSubmenu adds an empty submenu next to the selection, or inside it
// when a submenu is selected.
func (e *Editor) InsertSubmenu() (tree.Handle, error) {
	return e.insertNew(tree.Node{
		ID:        NewSubmenuLabel,
		Type:      layout.TypeSubmenu,
		UserLabel: layout.StringPtr(NewSubmenuLabel),
		Enabled:   true,
	})
}

// InsertSeparator adds a separator next to the selection, or inside it when
// a submenu is selected.
func (e *Editor) InsertSeparator() (tree.Handle, error) {
	return e.insertNew(tree.Node{
		ID:      layout.SeparatorID,
		Type:    layout.TypeSeparator,
		Enabled: true,
	})
}

func (e *Editor) insertNew(n tree.Node) (tree.Handle, error) {
	var (
		h   tree.Handle
		err error
	)
	sel, ok := e.Selected()
	switch {
	case !ok:
		h, err = e.model.InsertLast(tree.Root, n)
	case e.isSubmenu(sel):
		h, err = e.model.InsertFirst(sel, n)
	default:
		h, err = e.model.InsertAfter(sel, n)
	}
	if err != nil {
		return tree.Root, err
	}
	e.model.Renumber()
	e.selected = h
	e.changed()
	return h, nil
}

func (e *Editor) isSubmenu(h tree.Handle) bool {
	n, ok := e.model.Get(h)
	return ok && n.IsSubmenu()
}

// RemoveSelected removes the selected separator or submenu. The children of
// a submenu are kept and take its place.
func (e *Editor) RemoveSelected() error {
	sel, ok := e.Selected()
	if !ok {
		return ErrNoSelection
	}
	return e.Remove(sel)
}

// Remove removes a separator or submenu. See RemoveSelected.
func (e *Editor) Remove(h tree.Handle) error {
	n, err := e.get(h)
	if err != nil {
		return err
	}
	parent, idx := e.model.Parent(h), e.model.IndexOf(h)

	switch n.Type {
	case layout.TypeAction:
		return ErrNotRemovable
	case layout.TypeSubmenu:
		if err := tree.Promote(e.model, h); err != nil {
			return fmt.Errorf("remove submenu: %w", err)
		}
	default:
		if err := e.model.Remove(h); err != nil {
			return err
		}
		e.model.Renumber()
	}

	// select whatever now sits where h was
	sibs := e.model.Children(parent)
	switch {
	case idx < len(sibs):
		e.selected = sibs[idx]
	case len(sibs) > 0:
		e.selected = sibs[len(sibs)-1]
	default:
		e.selected = parent
	}
	e.changed()
	return nil
}

// editable returns the node when its label, icon and accelerator may change.
func (e *Editor) editable(h tree.Handle) (*tree.Node, error) {
	n, err := e.get(h)
	if err != nil {
		return nil, err
	}
	if n.Type == layout.TypeSeparator || !n.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrNotEditable, n.Label())
	}
	return n, nil
}

// SetLabel sets a custom label. A submenu's identifier follows its label.
// An empty label clears the override.
func (e *Editor) SetLabel(h tree.Handle, label string) error {
	if label == "" {
		return e.ClearLabel(h)
	}
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	n.UserLabel = layout.StringPtr(label)
	if n.IsSubmenu() {
		n.ID = label
	}
	e.changed()
	return nil
}

// ClearLabel drops the custom label.
func (e *Editor) ClearLabel(h tree.Handle) error {
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	if n.UserLabel == nil {
		return nil
	}
	n.UserLabel = nil
	e.changed()
	return nil
}

// SetIcon sets a custom icon name or path.
func (e *Editor) SetIcon(h tree.Handle, icon string) error {
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	n.UserIcon = layout.StringPtr(icon)
	e.changed()
	return nil
}

// ClearIcon shows the node without an icon.
func (e *Editor) ClearIcon(h tree.Handle) error {
	return e.SetIcon(h, "")
}

// OriginalIcon restores the icon from the action file.
func (e *Editor) OriginalIcon(h tree.Handle) error {
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	if n.Type != layout.TypeAction {
		return fmt.Errorf("%w: %s", ErrNotAction, n.Label())
	}
	n.UserIcon = nil
	e.changed()
	return nil
}

// SetAccelerator assigns s to h. A built-in shortcut is refused with an
// *accel.ReservedError. When another node already uses s, confirm decides
// whether it loses it; a nil confirm always declines.
func (e *Editor) SetAccelerator(h tree.Handle, s string, confirm ConfirmFunc) error {
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	a, err := accel.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid accelerator: %w", err)
	}
	if sc, ok := accel.FindReserved(e.cfg.Reserved, a); ok {
		return &accel.ReservedError{Shortcut: sc}
	}
	if n.Accelerator != nil {
		if cur, err := accel.Parse(*n.Accelerator); err == nil && cur.Equal(a) {
			return nil
		}
	}

	if owner, ok := e.accelOwner(a, h); ok {
		on, _ := e.model.Get(owner)
		if confirm == nil || !confirm(on.Label()) {
			return ErrAccelKept
		}
		e.log.WithFields(logrus.Fields{
			"accel": a.String(),
			"from":  on.ID,
			"to":    n.ID,
		}).Info("accelerator reassigned")
		on.Accelerator = nil
	}

	n.Accelerator = layout.StringPtr(a.String())
	e.changed()
	return nil
}

// accelOwner finds another node using a.
func (e *Editor) accelOwner(a accel.Accel, skip tree.Handle) (tree.Handle, bool) {
	work := e.model.Roots()
	for len(work) > 0 {
		h := work[0]
		work = work[1:]
		work = append(work, e.model.Children(h)...)
		if h == skip {
			continue
		}
		n, _ := e.model.Get(h)
		if n.Accelerator == nil || strings.TrimSpace(*n.Accelerator) == "" {
			continue
		}
		if other, err := accel.Parse(*n.Accelerator); err == nil && other.Equal(a) {
			return h, true
		}
	}
	return tree.Root, false
}

// ClearAccelerator removes the accelerator of h.
func (e *Editor) ClearAccelerator(h tree.Handle) error {
	n, err := e.editable(h)
	if err != nil {
		return err
	}
	if n.Accelerator == nil {
		return nil
	}
	n.Accelerator = nil
	e.changed()
	return nil
}

// ToggleEnabled flips whether the action h shows in the menu. The disabled
// list is written right away; the layout does not need saving.
func (e *Editor) ToggleEnabled(h tree.Handle) error {
	n, err := e.get(h)
	if err != nil {
		return err
	}
	return e.SetEnabled(h, !n.Enabled)
}

// SetEnabled enables or disables the action h. See ToggleEnabled.
func (e *Editor) SetEnabled(h tree.Handle, enabled bool) error {
	n, err := e.get(h)
	if err != nil {
		return err
	}
	if n.Type != layout.TypeAction {
		return fmt.Errorf("%w: %s", ErrNotAction, n.Label())
	}
	if n.Enabled == enabled {
		return nil
	}

	n.Enabled = enabled
	if err := e.store.Set(e.model.DisabledIDs()); err != nil {
		n.Enabled = !enabled
		return fmt.Errorf("save disabled actions: %w", err)
	}
	e.log.WithFields(logrus.Fields{"id": n.ID, "enabled": enabled}).Debug("action toggled")
	return nil
}

// ApplyDisabled refreshes enabled flags from a disabled list changed
// elsewhere. Nothing else is touched.
func (e *Editor) ApplyDisabled(ids []string) {
	off := make(map[string]bool, len(ids))
	for _, id := range ids {
		off[id] = true
	}
	for _, h := range e.model.Handles() {
		if n, _ := e.model.Get(h); n.Type == layout.TypeAction {
			n.Enabled = !off[n.ID]
		}
	}
}
