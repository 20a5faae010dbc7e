package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Migration is one idempotent schema step. Test reports whether the step
// has already been applied; Apply is only run when it has not.
type Migration struct {
	Name  string
	Test  func(ctx context.Context, db *sql.DB, table string) (bool, error)
	Apply func(ctx context.Context, db *sql.DB, table string) error
}

// Migrate runs migrations in order against table.
func Migrate(ctx context.Context, db *sql.DB, table string, migrations []Migration) error {
	for _, m := range migrations {
		done, err := m.Test(ctx, db, table)
		if err != nil {
			return fmt.Errorf("migration %s: test: %w", m.Name, err)
		}
		if done {
			continue
		}
		if err := m.Apply(ctx, db, table); err != nil {
			return fmt.Errorf("migration %s: apply: %w", m.Name, err)
		}
	}
	return nil
}

// exists runs a query that returns a row only when the object exists.
func exists(ctx context.Context, db *sql.DB, query string, args ...interface{}) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func execStatement(ctx context.Context, db *sql.DB, statement string) error {
	_, err := db.ExecContext(ctx, statement)
	return err
}

func fingerprintIndex(table string) string {
	return table + "_fingerprint_idx"
}

func createFingerprintIndex(table string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (fingerprint)", fingerprintIndex(table), table)
}
