// Package storage abstracts where conversion artifacts are kept. The
// conversion core only ever sees byte slices; a Store is injected into the
// transport layer, so no global temp-directory state exists.
package storage

import (
	"errors"
	"fmt"
)

// Storage errors.
var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
)

// Store persists named conversion artifacts.
type Store interface {
	// Put saves an artifact, replacing any previous content.
	Put(name string, data []byte) error
	// Get returns the artifact's content, or ErrNotFound.
	Get(name string) ([]byte, error)
	// Delete removes an artifact. Deleting a missing artifact is not an
	// error; failure cleanup paths rely on that.
	Delete(name string) error
	// List returns the names of all stored artifacts.
	List() ([]string, error)
}

// Open creates a store for the given backend type: "memory" or "disk".
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "disk":
		return NewDiskStore(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
