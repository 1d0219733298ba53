// Package kv provides the byte-level key-value media that task lists are
// persisted to.
//
// A medium stores opaque values under string keys. Values are replaced
// wholesale on every Put; there is no partial update and no versioning.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"

	internalstrings "github.com/amonks/taskmate/internal/strings"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("key not found")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidKey is returned when a key is empty or contains a path separator.
	ErrInvalidKey = errors.New("invalid key")
)

// Medium is a durable key-value store.
type Medium interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any prior value.
	Put(key string, value []byte) error

	// Close releases any resources held by the medium.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// BoltFile is the database file name used by the bolt backend inside a directory.
const BoltFile = "taskmate.db"

// Backends returns all valid backend names.
func Backends() []string {
	return []string{BackendFile, BackendBolt, BackendMemory}
}

// Open opens the named backend rooted at dir.
func Open(backend, dir string) (Medium, error) {
	switch internalstrings.NormalizeLowerTrimSpace(backend) {
	case "", BackendFile:
		return OpenFile(dir)
	case BackendBolt:
		return OpenBolt(filepath.Join(dir, BoltFile))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func validateKey(key string) error {
	if internalstrings.IsBlank(key) {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for _, r := range key {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
