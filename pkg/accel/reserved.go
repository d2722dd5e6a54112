package accel

import (
	"fmt"
	"sort"
)

// Shortcut is a built-in key binding of the host file manager.
type Shortcut struct {
	Label string
	Accel Accel
}

// ReservedError is returned when an accelerator collides with a built-in
// shortcut. Its message is meant for the user.
type ReservedError struct {
	Shortcut Shortcut
}

func (e *ReservedError) Error() string {
	return fmt.Sprintf("%s is already in use by the file manager (%s) and cannot be changed",
		e.Shortcut.Accel.Label(), e.Shortcut.Label)
}

// DefaultReserved maps labels of the file manager's own shortcuts to their
// accelerators.
var DefaultReserved = map[string]string{
	"Copy":                   "<Primary>c",
	"Cut":                    "<Primary>x",
	"Paste":                  "<Primary>v",
	"Select all":             "<Primary>a",
	"Invert selection":       "<Primary><Shift>i",
	"Undo":                   "<Primary>z",
	"Redo":                   "<Primary>y",
	"Rename":                 "F2",
	"Move to trash":          "Delete",
	"Delete permanently":     "<Shift>Delete",
	"Create new folder":      "<Primary><Shift>n",
	"New window":             "<Primary>n",
	"New tab":                "<Primary>t",
	"Close tab":              "<Primary>w",
	"Quit":                   "<Primary>q",
	"Show hidden files":      "<Primary>h",
	"Properties":             "<Alt>Return",
	"Search":                 "<Primary>f",
	"Edit location":          "<Primary>l",
	"Reload":                 "<Primary>r",
	"Bookmark this location": "<Primary>d",
	"Go back":                "<Alt>Left",
	"Go forward":             "<Alt>Right",
	"Open parent folder":     "<Alt>Up",
	"Go home":                "<Alt>Home",
	"Zoom in":                "<Primary>plus",
	"Zoom out":               "<Primary>minus",
	"Normal size":            "<Primary>0",
	"Toggle sidebar":         "F9",
	"Toggle menubar":         "F10",
	"Help":                   "F1",
	"Open in terminal":       "F4",
}

// NewReserved builds the reserved shortcut list from a label -> accelerator
// table. The result is sorted by label.
func NewReserved(table map[string]string) ([]Shortcut, error) {
	out := make([]Shortcut, 0, len(table))
	for label, s := range table {
		a, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("reserved shortcut %q: %w", label, err)
		}
		out = append(out, Shortcut{Label: label, Accel: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// FindReserved returns the shortcut in list that uses a, if any.
func FindReserved(list []Shortcut, a Accel) (Shortcut, bool) {
	for _, s := range list {
		if s.Accel.Equal(a) {
			return s, true
		}
	}
	return Shortcut{}, false
}
