// Package storage defines the key-value store interface that plume's hook
// subsystem extends, along with the Hooked wrapper that frames every store
// operation with its before/after dispatch pair.
//
// Engines live in subpackages: memorystore for transient in-memory data,
// sqlitestore and postgresstore for durable data.
package storage

import "errors"

var (
	// ErrNotFound is returned when no value exists for the given key.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when an operation is attempted with an empty
	// key.
	ErrEmptyKey = errors.New("empty key")
)

// Store is the minimal key-value contract engines implement. Keys and values
// are opaque byte strings.
//
// Implementations must be safe for concurrent use; the hook dispatch layered
// on top of them is not synchronized and relies on the host completing all
// plugin registration before serving operations.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Save stores value under key, overwriting any existing value.
	Save(key, value []byte) error

	// Delete removes the value stored under key, or returns ErrNotFound.
	Delete(key []byte) error
}
