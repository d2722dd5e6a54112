package actions

import (
	"path/filepath"
	"strings"
)

// IconKind tells how an icon reference should be resolved.
type IconKind int

const (
	IconNone IconKind = iota
	IconThemed
	IconAbsolute
	IconRelative
)

// IconRef is an icon as written in an action file: a themed icon name, an
// absolute path, or a path relative to the action file written as <name.png>.
type IconRef struct {
	Kind IconKind
	Raw  string
}

// ParseIcon classifies a raw Icon-Name value.
func ParseIcon(raw string) IconRef {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return IconRef{Kind: IconNone}
	case strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") && len(raw) > 2:
		return IconRef{Kind: IconRelative, Raw: raw[1 : len(raw)-1]}
	case filepath.IsAbs(raw):
		return IconRef{Kind: IconAbsolute, Raw: raw}
	default:
		return IconRef{Kind: IconThemed, Raw: raw}
	}
}

// Resolve returns a usable icon string. Relative references are joined with
// baseDir, the directory of the action file.
func (i IconRef) Resolve(baseDir string) string {
	if i.Kind == IconRelative {
		return filepath.Join(baseDir, i.Raw)
	}
	return i.Raw
}

// Record is one installed action definition.
type Record struct {
	ID          string
	Path        string
	Name        string
	Comment     string
	Icon        IconRef
	Exec        string
	Accelerator string
	Active      bool
}

// Dir is the directory holding the action file.
func (r *Record) Dir() string {
	return filepath.Dir(r.Path)
}

// DisplayName is the menu label: underscores (mnemonic markers) become spaces.
func (r *Record) DisplayName() string {
	return strings.ReplaceAll(r.Name, "_", " ")
}

// IconString resolves the record's icon against its own directory.
func (r *Record) IconString() string {
	return r.Icon.Resolve(r.Dir())
}

// Pool is an ordered set of records keyed by identifier. Records are taken
// out as they get placed into a tree; what is left is untracked.
type Pool struct {
	order   []string
	records map[string]*Record
}

func NewPool() *Pool {
	return &Pool{records: make(map[string]*Record)}
}

// Put adds or replaces a record. A replaced record keeps its original
// position in the scan order.
func (p *Pool) Put(r *Record) {
	if _, ok := p.records[r.ID]; !ok {
		p.order = append(p.order, r.ID)
	}
	p.records[r.ID] = r
}

// Get looks up a record without consuming it.
func (p *Pool) Get(id string) (*Record, bool) {
	r, ok := p.records[id]
	return r, ok
}

// Take consumes a record from the pool.
func (p *Pool) Take(id string) (*Record, bool) {
	r, ok := p.records[id]
	if !ok {
		return nil, false
	}
	delete(p.records, id)
	return r, true
}

// Len is the number of records not yet taken.
func (p *Pool) Len() int {
	return len(p.records)
}

// Remaining returns the records not yet taken, in scan order.
func (p *Pool) Remaining() []*Record {
	out := make([]*Record, 0, len(p.records))
	for _, id := range p.order {
		if r, ok := p.records[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Clone copies the pool so a scan result can back more than one build.
func (p *Pool) Clone() *Pool {
	c := &Pool{
		order:   append([]string(nil), p.order...),
		records: make(map[string]*Record, len(p.records)),
	}
	for id, r := range p.records {
		c.records[id] = r
	}
	return c
}
