package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists records as JSON files, one per panel name, under
// the paneldock config directory.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func panelsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneldock", "panels"), nil
}

func validatePanelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("panel name is required")
	}
	if strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid panel name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid panel name %q", name)
	}
	return nil
}

// NewFileStore creates a store for the named panel in the default
// location.
func NewFileStore(name string) (*FileStore, error) {
	if err := validatePanelName(name); err != nil {
		return nil, err
	}
	dir, err := panelsDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, name+".json")}, nil
}

// NewFileStoreAt creates a store backed by an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel state: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse panel state: %w", err)
	}
	return &rec, nil
}

func (s *FileStore) Save(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode panel state: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write panel state: %w", err)
	}
	return nil
}

// Reset removes the persisted record. Missing files are not an error.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove panel state: %w", err)
	}
	return nil
}
