package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteMigrations creates the record table and its fingerprint index.
var SQLiteMigrations = []Migration{
	{
		Name: "create table",
		Test: func(ctx context.Context, db *sql.DB, table string) (bool, error) {
			return exists(ctx, db,
				"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		},
		Apply: func(ctx context.Context, db *sql.DB, table string) error {
			return execStatement(ctx, db, createTableStatement(table))
		},
	},
	{
		Name: "fingerprint index",
		Test: func(ctx context.Context, db *sql.DB, table string) (bool, error) {
			return exists(ctx, db,
				"SELECT 1 FROM sqlite_master WHERE type = 'index' AND name = ?", fingerprintIndex(table))
		},
		Apply: func(ctx context.Context, db *sql.DB, table string) error {
			return execStatement(ctx, db, createFingerprintIndex(table))
		},
	},
}

// SQLiteStore implements Store using an embedded SQLite database.
type SQLiteStore struct {
	*sqlStore
}

// NewSQLiteStore migrates table on db and returns a store writing to it.
func NewSQLiteStore(ctx context.Context, db *sql.DB, table string) (*SQLiteStore, error) {
	s, err := newSQLStore(ctx, db, table, sqlitePlaceholder, SQLiteMigrations)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{sqlStore: s}, nil
}

// OpenSQLite opens the database file at path and a SQLiteStore on it.
// SQLite allows one writer, so the pool is limited to a single connection.
func OpenSQLite(ctx context.Context, path, table string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	s, err := NewSQLiteStore(ctx, db, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func sqlitePlaceholder(int) string {
	return "?"
}
