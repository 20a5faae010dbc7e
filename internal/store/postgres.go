package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresMigrations creates the record table and its fingerprint index.
var PostgresMigrations = []Migration{
	{
		Name: "create table",
		Test: func(ctx context.Context, db *sql.DB, table string) (bool, error) {
			return exists(ctx, db,
				"SELECT 1 FROM pg_tables WHERE schemaname = 'public' AND tablename = $1", table)
		},
		Apply: func(ctx context.Context, db *sql.DB, table string) error {
			return execStatement(ctx, db, createTableStatement(table))
		},
	},
	{
		Name: "fingerprint index",
		Test: func(ctx context.Context, db *sql.DB, table string) (bool, error) {
			return exists(ctx, db,
				"SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = $1", fingerprintIndex(table))
		},
		Apply: func(ctx context.Context, db *sql.DB, table string) error {
			return execStatement(ctx, db, createFingerprintIndex(table))
		},
	},
}

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	*sqlStore
}

// NewPostgresStore migrates table on db and returns a store writing to it.
func NewPostgresStore(ctx context.Context, db *sql.DB, table string) (*PostgresStore, error) {
	s, err := newSQLStore(ctx, db, table, postgresPlaceholder, PostgresMigrations)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{sqlStore: s}, nil
}

// OpenPostgres connects to uri and opens a PostgresStore.
func OpenPostgres(ctx context.Context, uri, table string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	s, err := NewPostgresStore(ctx, db, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func postgresPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
