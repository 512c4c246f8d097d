package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/inventaris/internal/database"
	"github.com/jask/inventaris/internal/database/repository"
)

// SQLiteStore keeps values in the local_storage table.
type SQLiteStore struct {
	*repository.LocalStorageRepo
	db *sql.DB
}

// OpenSQLite migrates the database at path and opens it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &SQLiteStore{LocalStorageRepo: repository.NewLocalStorageRepo(db), db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
