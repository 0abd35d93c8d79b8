// Package store persists the whole task collection.
//
// A store is read once at the start of an invocation and, when the
// collection changed, overwritten in full at the end. There is no locking:
// two concurrent invocations race and the last writer wins.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"todocli/internal/config"
	"todocli/internal/task"
)

// Store is the persistence interface used by the dispatcher.
// Commands never touch files directly.
type Store interface {
	// Init creates an empty store if none exists.
	// Reports whether a new store was created.
	Init(ctx context.Context) (bool, error)

	// Load reads the full collection in stored order.
	// A missing store is an error wrapping fs.ErrNotExist.
	Load(ctx context.Context) ([]task.Task, error)

	// Save overwrites the store with tasks.
	Save(ctx context.Context, tasks []task.Task) error

	// Path returns the store file path.
	Path() string

	// Close releases any resources held by the store.
	Close() error
}

// DecodeError reports a store file that exists but cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Open returns the store for cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONFile(cfg.DataPath()), nil
	case config.BackendSQLite:
		return NewSQLite(cfg.DataPath()), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// ensureDir creates the directory holding path with mode 0700.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
