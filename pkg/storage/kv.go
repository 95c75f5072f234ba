// Package storage provides the small key-value persistence layer that backs
// beacon's local state. Backends are interchangeable: a JSON file, SQLite,
// or process memory.
package storage

import (
	"errors"
	"fmt"

	"beacon/pkg/config"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is a string key-value store with synchronous reads and writes.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes the key; deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg *config.Config) (KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileKV(cfg.StoragePath()), nil
	case config.BackendSQLite:
		return NewSQLiteKV(cfg.StoragePath())
	case config.BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
}
