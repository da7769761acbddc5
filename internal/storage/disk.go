package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps artifacts as files in one flat directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk-backed store, creating dir if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("disk storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Put saves an artifact.
func (s *DiskStore) Put(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}

// Get returns an artifact's content.
func (s *DiskStore) Get(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return data, nil
}

// Delete removes an artifact if present.
func (s *DiskStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns all artifact names, sorted.
func (s *DiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// validateName rejects names that could escape the storage directory.
func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
