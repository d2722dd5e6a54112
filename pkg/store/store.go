package store

import (
	"fmt"
	"path/filepath"
)

// DisabledStore persists the identifiers of disabled actions, in order.
type DisabledStore interface {
	Get() ([]string, error)
	Set(ids []string) error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the store for backend, keeping its data under stateDir.
func Open(backend, stateDir string) (DisabledStore, error) {
	switch backend {
	case "", BackendSQLite:
		return NewSQLiteStore(filepath.Join(stateDir, "action-layout.db"))
	case BackendFile:
		return NewFileStore(filepath.Join(stateDir, "disabled-actions.yaml")), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

// Path returns the file backing s, or "" when s keeps nothing on disk.
func Path(s DisabledStore) string {
	if p, ok := s.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// Close releases resources held by s, if any.
func Close(s DisabledStore) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// dedupe keeps the first occurrence of every non-empty id.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
