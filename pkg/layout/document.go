package layout

import (
	"encoding/json"
	"fmt"
)

// NodeType is the kind of a layout node.
type NodeType string

const (
	TypeAction    NodeType = "action"
	TypeSubmenu   NodeType = "submenu"
	TypeSeparator NodeType = "separator"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case TypeAction, TypeSubmenu, TypeSeparator:
		return true
	}
	return false
}

// SeparatorID is the identifier every separator is stored with.
const SeparatorID = "separator"

// Node is one entry of the persisted menu layout. Overrides are nil when the
// user has not set them. An empty UserIcon means "no icon".
type Node struct {
	UUID        string   `json:"uuid" yaml:"uuid"`
	Type        NodeType `json:"type" yaml:"type"`
	UserLabel   *string  `json:"user-label" yaml:"user-label"`
	UserIcon    *string  `json:"user-icon" yaml:"user-icon"`
	Accelerator *string  `json:"accelerator" yaml:"accelerator"`
	Children    []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// MarshalJSON always writes a children array for submenus, even when empty,
// and never for other node types.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	out := struct {
		plain
		Children *[]Node `json:"children,omitempty"`
	}{plain: plain(n)}
	if n.Type == TypeSubmenu {
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

// Document is the persisted layout: an ordered list of top level nodes.
type Document struct {
	Toplevel []Node `json:"toplevel" yaml:"toplevel"`
}

// MarshalJSON writes an empty toplevel as [] rather than null.
func (d Document) MarshalJSON() ([]byte, error) {
	top := d.Toplevel
	if top == nil {
		top = []Node{}
	}
	return json.Marshal(struct {
		Toplevel []Node `json:"toplevel"`
	}{top})
}

// Flat returns the empty document. Loading it places every installed action
// at the top level in scan order.
func Flat() *Document {
	return &Document{Toplevel: []Node{}}
}

// Count returns the number of nodes in the document, recursively.
func (d *Document) Count() int {
	n := 0
	stack := make([][]Node, 0, 8)
	stack = append(stack, d.Toplevel)
	for len(stack) > 0 {
		nodes := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n += len(nodes)
		for i := range nodes {
			if len(nodes[i].Children) > 0 {
				stack = append(stack, nodes[i].Children)
			}
		}
	}
	return n
}

// Label returns the label override or "".
func (n Node) Label() string {
	if n.UserLabel == nil {
		return ""
	}
	return *n.UserLabel
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Type, n.UUID)
}

// StringPtr is a small helper for building overrides.
func StringPtr(s string) *string {
	return &s
}
