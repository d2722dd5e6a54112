package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
)

// ValidationError points at the first invalid field in a layout document.
type ValidationError struct {
	Path  string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s.%s: %s", e.Path, e.Field, e.Msg)
}

// Diagnostic is a non-fatal remark produced while validating.
type Diagnostic struct {
	Path string
	Msg  string
}

func (d Diagnostic) String() string {
	return d.Path + ": " + d.Msg
}

// Parse decodes and validates a layout document. Any syntax or validation
// error rejects the whole document.
func Parse(data []byte) (*Document, []Diagnostic, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("parse layout: %w", err)
	}
	raw, ok := root["toplevel"]
	if !ok {
		return nil, nil, &ValidationError{Path: "$", Field: "toplevel", Msg: "missing"}
	}

	v := &validator{}
	nodes, err := v.nodeList("toplevel", raw)
	if err != nil {
		return nil, v.diags, err
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return &Document{Toplevel: nodes}, v.diags, nil
}

type validator struct {
	diags []Diagnostic
}

func (v *validator) nodeList(path string, raw json.RawMessage) ([]Node, error) {
	var items []json.RawMessage
	if isNull(raw) {
		return nil, &ValidationError{Path: path, Msg: "must be a list, got null"}
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Path: path, Msg: "must be a list"}
	}
	out := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := v.node(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (v *validator) node(path string, raw json.RawMessage) (Node, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Node{}, &ValidationError{Path: path, Msg: "must be an object"}
	}

	var n Node
	uuid, err := requiredString(path, "uuid", fields)
	if err != nil {
		return Node{}, err
	}
	if uuid == "" {
		return Node{}, &ValidationError{Path: path, Field: "uuid", Msg: "must not be empty"}
	}
	n.UUID = uuid

	typ, err := requiredString(path, "type", fields)
	if err != nil {
		return Node{}, err
	}
	n.Type = NodeType(typ)
	if !n.Type.Valid() {
		return Node{}, &ValidationError{Path: path, Field: "type",
			Msg: fmt.Sprintf("must be one of action, submenu, separator (got %q)", typ)}
	}

	if n.UserLabel, err = optionalString(path, "user-label", fields); err != nil {
		return Node{}, err
	}
	if n.UserLabel != nil && *n.UserLabel == "" {
		return Node{}, &ValidationError{Path: path, Field: "user-label", Msg: "must be null or a non-empty string"}
	}

	if n.UserIcon, err = optionalString(path, "user-icon", fields); err != nil {
		return Node{}, err
	}

	if n.Accelerator, err = optionalString(path, "accelerator", fields); err != nil {
		return Node{}, err
	}
	if n.Accelerator != nil && strings.TrimSpace(*n.Accelerator) != "" {
		if a, perr := accel.Parse(*n.Accelerator); perr != nil || a.IsZero() {
			return Node{}, &ValidationError{Path: path, Field: "accelerator",
				Msg: fmt.Sprintf("invalid accelerator %q", *n.Accelerator)}
		}
	}

	children, has := fields["children"]
	switch {
	case !has || (isNull(children) && n.Type != TypeSubmenu):
	case n.Type != TypeSubmenu:
		v.diags = append(v.diags, Diagnostic{
			Path: path + ".children",
			Msg:  fmt.Sprintf("ignored on %s node", n.Type),
		})
	case isNull(children):
	default:
		kids, err := v.nodeList(path+".children", children)
		if err != nil {
			return Node{}, err
		}
		n.Children = kids
	}

	return n, nil
}

func requiredString(path, field string, fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields[field]
	if !ok || isNull(raw) {
		return "", &ValidationError{Path: path, Field: field, Msg: "missing"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ValidationError{Path: path, Field: field, Msg: "must be a string"}
	}
	return s, nil
}

func optionalString(path, field string, fields map[string]json.RawMessage) (*string, error) {
	raw, ok := fields[field]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &ValidationError{Path: path, Field: field, Msg: "must be null or a string"}
	}
	return &s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Validate re-checks an in-memory document with the same rules used when
// loading from disk.
func Validate(doc *Document) ([]Diagnostic, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	_, diags, err := Parse(data)
	return diags, err
}
