package accel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Modifier is a bitmask of keyboard modifiers.
type Modifier uint

const (
	Shift Modifier = 1 << iota
	Control
	Alt
	Super
	Hyper
	Meta
)

var (
	ErrEmpty      = errors.New("empty accelerator")
	ErrNoKey      = errors.New("accelerator has no key")
	ErrUnknownKey = errors.New("unknown key name")
	ErrUnknownMod = errors.New("unknown modifier")
)

// Accel is a parsed key/modifier combination.
type Accel struct {
	Key  string
	Mods Modifier
}

// IsZero reports whether the accelerator carries no key.
func (a Accel) IsZero() bool {
	return a.Key == ""
}

// Equal compares key and modifiers.
func (a Accel) Equal(b Accel) bool {
	return a.Key == b.Key && a.Mods == b.Mods
}

var modOrder = []struct {
	mod   Modifier
	tag   string
	label string
}{
	{Control, "<Primary>", "Ctrl"},
	{Shift, "<Shift>", "Shift"},
	{Alt, "<Alt>", "Alt"},
	{Super, "<Super>", "Super"},
	{Hyper, "<Hyper>", "Hyper"},
	{Meta, "<Meta>", "Meta"},
}

// String returns the canonical stored form, e.g. "<Primary><Shift>k".
func (a Accel) String() string {
	if a.IsZero() {
		return ""
	}
	var sb strings.Builder
	for _, m := range modOrder {
		if a.Mods&m.mod != 0 {
			sb.WriteString(m.tag)
		}
	}
	sb.WriteString(a.Key)
	return sb.String()
}

// Label returns a human readable form, e.g. "Ctrl+Shift+K".
func (a Accel) Label() string {
	if a.IsZero() {
		return ""
	}
	parts := make([]string, 0, len(modOrder)+1)
	for _, m := range modOrder {
		if a.Mods&m.mod != 0 {
			parts = append(parts, m.label)
		}
	}
	key := a.Key
	if utf8.RuneCountInString(key) == 1 {
		key = strings.ToUpper(key)
	}
	return strings.Join(append(parts, key), "+")
}

var modNames = map[string]Modifier{
	"primary": Control,
	"control": Control,
	"ctrl":    Control,
	"ctl":     Control,
	"shift":   Shift,
	"shft":    Shift,
	"alt":     Alt,
	"mod1":    Alt,
	"super":   Super,
	"win":     Super,
	"hyper":   Hyper,
	"meta":    Meta,
}

// Parse reads either the bracketed form ("<Control><Shift>k") or the plus
// form ("Ctrl+Shift+K"). A modifier-only or unknown key is an error.
func Parse(s string) (Accel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Accel{}, ErrEmpty
	}

	var a Accel
	var key string
	switch {
	case strings.HasPrefix(s, "<"):
		rest := s
		for strings.HasPrefix(rest, "<") {
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return Accel{}, fmt.Errorf("parse %q: unterminated modifier", s)
			}
			mod, ok := modNames[strings.ToLower(rest[1:end])]
			if !ok {
				return Accel{}, fmt.Errorf("parse %q: %w %q", s, ErrUnknownMod, rest[1:end])
			}
			a.Mods |= mod
			rest = rest[end+1:]
		}
		key = rest
	case len(s) > 1 && strings.Contains(s, "+"):
		body := s
		if strings.HasSuffix(body, "++") {
			key = "+"
			body = strings.TrimSuffix(body, "++")
		} else {
			idx := strings.LastIndexByte(body, '+')
			key = body[idx+1:]
			body = body[:idx]
		}
		for _, part := range strings.Split(body, "+") {
			mod, ok := modNames[strings.ToLower(strings.TrimSpace(part))]
			if !ok {
				return Accel{}, fmt.Errorf("parse %q: %w %q", s, ErrUnknownMod, part)
			}
			a.Mods |= mod
		}
	default:
		key = s
	}

	norm, err := normalizeKey(key)
	if err != nil {
		return Accel{}, fmt.Errorf("parse %q: %w", s, err)
	}
	a.Key = norm
	return a, nil
}

// MustParse is Parse for static tables.
func MustParse(s string) Accel {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Valid reports whether s parses to a non-zero accelerator.
func Valid(s string) bool {
	a, err := Parse(s)
	return err == nil && !a.IsZero()
}

var functionKey = regexp.MustCompile(`^[Ff]([1-9]|[12][0-9]|3[0-5])$`)

var punctuation = map[rune]string{
	' ':  "space",
	',':  "comma",
	'.':  "period",
	'/':  "slash",
	'\\': "backslash",
	'-':  "minus",
	'=':  "equal",
	'+':  "plus",
	';':  "semicolon",
	'\'': "apostrophe",
	'`':  "grave",
	'[':  "bracketleft",
	']':  "bracketright",
}

var namedKeys = map[string]string{}

func init() {
	canonical := []string{
		"BackSpace", "Tab", "Return", "Escape", "space", "Delete", "Insert",
		"Home", "End", "Page_Up", "Page_Down", "Up", "Down", "Left", "Right",
		"Menu", "Print", "Pause", "KP_Enter", "KP_Add", "KP_Subtract",
		"comma", "period", "slash", "backslash", "minus", "equal", "plus",
		"semicolon", "apostrophe", "grave", "bracketleft", "bracketright",
	}
	for _, name := range canonical {
		namedKeys[strings.ToLower(name)] = name
	}
	aliases := map[string]string{
		"del":       "Delete",
		"esc":       "Escape",
		"enter":     "Return",
		"ins":       "Insert",
		"pgup":      "Page_Up",
		"pageup":    "Page_Up",
		"pgdn":      "Page_Down",
		"pagedown":  "Page_Down",
		"backspace": "BackSpace",
	}
	for alias, name := range aliases {
		namedKeys[alias] = name
	}
}

func normalizeKey(k string) (string, error) {
	if k == "" {
		return "", ErrNoKey
	}
	if utf8.RuneCountInString(k) == 1 {
		r, _ := utf8.DecodeRuneInString(k)
		if name, ok := punctuation[r]; ok {
			return name, nil
		}
		if !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w %q", ErrUnknownKey, k)
		}
		return string(unicode.ToLower(r)), nil
	}
	if m := functionKey.FindStringSubmatch(k); m != nil {
		return "F" + m[1], nil
	}
	if name, ok := namedKeys[strings.ToLower(k)]; ok {
		return name, nil
	}
	if _, isMod := modNames[strings.ToLower(k)]; isMod {
		return "", ErrNoKey
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, k)
}
