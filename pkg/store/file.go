package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the disabled list in a YAML file.
type FileStore struct {
	path string
}

type fileData struct {
	Disabled []string `yaml:"disabled-actions"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read disabled list: %w", err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse disabled list %s: %w", s.path, err)
	}
	return dedupe(fd.Disabled), nil
}

func (s *FileStore) Set(ids []string) error {
	data, err := yaml.Marshal(fileData{Disabled: dedupe(ids)})
	if err != nil {
		return fmt.Errorf("encode disabled list: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write disabled list: %w", err)
	}
	return nil
}
