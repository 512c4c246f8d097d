// Package storage provides the local key-value stores the checklist snapshot
// is written to. All drivers return (nil, nil) from Load for a missing key.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/inventaris/internal/config"
)

// Store is a local key-value store.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the store named by cfg.Driver, creating its directory and,
// for sqlite, applying migrations.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return NewFileStore(cfg.Path), nil
	case "", "sqlite":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		st, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureDir(path string) error {
	if path == "" {
		return fmt.Errorf("storage path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir storage dir: %w", err)
	}
	return nil
}
