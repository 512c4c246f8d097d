package repository

import (
	"context"
	"database/sql"
)

// LocalStorageRepo is a string key-value table, one row per key.
type LocalStorageRepo struct {
	db *sql.DB
}

func NewLocalStorageRepo(db *sql.DB) *LocalStorageRepo { return &LocalStorageRepo{db: db} }

// Load returns (nil, nil) for a key that was never saved.
func (r *LocalStorageRepo) Load(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *LocalStorageRepo) Save(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO local_storage(key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=datetime('now');
	`, key, string(value))
	return err
}
