package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/taskflow/internal/dbx"
	"github.com/dmitrijs2005/taskflow/internal/filex"
	"github.com/dmitrijs2005/taskflow/internal/storage/migrations"

	_ "modernc.org/sqlite"
)

// kvRepo implements single-row key-value access using a DBTX
// (either *sql.DB or *sql.Tx).
type kvRepo struct {
	db dbx.DBTX
}

func (r *kvRepo) Upsert(ctx context.Context, key string, value []byte) error {
	query := ` INSERT INTO app_state (key, value, updated_at)
			values (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value,
				updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `select value from app_state where key=?`
	row := r.db.QueryRowContext(ctx, query, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return []byte(value), nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query := `delete from app_state where key=?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// SQLiteStore keeps the snapshot in a single-row kv table inside a local
// SQLite file, the closest durable analogue of a browser storage slot.
type SQLiteStore struct {
	db *sql.DB
	kv *kvRepo
}

// Open opens (creating if necessary) the SQLite database at path and runs
// pending migrations.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, kv: &kvRepo{db: db}}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// Save upserts the snapshot under the fixed key. The write runs in a
// transaction so a snapshot is stored either completely or not at all.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := &kvRepo{db: tx}
		return repo.Upsert(ctx, SnapshotKey, data)
	})
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	return s.kv.Get(ctx, SnapshotKey)
}

// Clear removes the snapshot. Removing an absent snapshot is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, SnapshotKey)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
