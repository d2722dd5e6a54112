package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the layout file name inside the nemo config directory.
const FileName = "actions-tree.json"

// DefaultPath returns the layout location under configHome.
func DefaultPath(configHome string) string {
	return filepath.Join(configHome, "nemo", FileName)
}

// LoadReport describes what happened while loading a layout file.
type LoadReport struct {
	Path string
	// Missing is set when the file does not exist. Not an error.
	Missing bool
	// Discarded is set when the file existed but was unreadable or invalid,
	// and the empty document was used in its place.
	Discarded   bool
	Reason      error
	Diagnostics []Diagnostic
}

// Load reads the layout at path. It always returns a usable document: a
// missing, unreadable or invalid file yields the empty document, and the
// report says why.
func Load(path string) (*Document, LoadReport) {
	report := LoadReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			report.Missing = true
		} else {
			report.Discarded = true
			report.Reason = fmt.Errorf("read layout: %w", err)
		}
		return Flat(), report
	}

	doc, diags, err := Parse(data)
	report.Diagnostics = diags
	if err != nil {
		report.Discarded = true
		report.Reason = err
		return Flat(), report
	}
	return doc, report
}

// Marshal encodes doc the way it is stored on disk.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes doc to path atomically, creating parent directories.
func Save(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set layout permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace layout: %w", err)
	}
	return nil
}
