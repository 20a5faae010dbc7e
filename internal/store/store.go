// Package store persists accepted records keyed by identifier.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
	"github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// Store saves records. Upsert replaces any earlier row with the same ID.
type Store interface {
	Upsert(ctx context.Context, rec *record.Record) error
	Close() error
}

// columns lists the table layout in insert order; id is the conflict key.
var columns = []string{
	"id",
	"event",
	"site",
	"round",
	"date",
	"time",
	"time_control",
	"white",
	"white_title",
	"white_elo",
	"white_fide",
	"black",
	"black_title",
	"black_elo",
	"black_fide",
	"eco",
	"opening",
	"variation",
	"result",
	"tags",
	"moves",
	"fingerprint",
}

// rowValues maps rec onto columns. Elo and FIDE ids that do not parse are
// stored as 0. The fingerprint is stored bit-for-bit as a signed 64-bit
// integer.
func rowValues(rec *record.Record) []interface{} {
	return []interface{}{
		rec.ID,
		rec.Tag(record.EventTag),
		rec.Tag(record.SiteTag),
		rec.Tag(record.RoundTag),
		rec.Tag(record.DateTag),
		rec.Tag(record.TimeTag),
		rec.Tag(record.TimeControlTag),
		rec.Tag(record.WhiteTag),
		rec.Tag(record.WhiteTitleTag),
		rec.IntTag(record.WhiteEloTag),
		rec.IntTag(record.WhiteFideIDTag),
		rec.Tag(record.BlackTag),
		rec.Tag(record.BlackTitleTag),
		rec.IntTag(record.BlackEloTag),
		rec.IntTag(record.BlackFideIDTag),
		rec.Tag(record.ECOTag),
		rec.Tag(record.OpeningTag),
		rec.Tag(record.VariationTag),
		rec.Tag(record.ResultTag),
		rec.TagsText,
		rec.MoveString(),
		int64(rec.Fingerprint),
	}
}

// upsertStatement builds the insert-or-update statement for table.
// placeholder renders the n-th (1-based) bind parameter.
func upsertStatement(table string, placeholder func(n int) string) string {
	params := make([]string, len(columns))
	for i := range columns {
		params[i] = placeholder(i + 1)
	}
	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(params, ", "),
		strings.Join(updates, ", "))
}

// createTableStatement is shared by both backends; the types are portable.
func createTableStatement(table string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
		id           VARCHAR(255) NOT NULL PRIMARY KEY,
		event        TEXT         DEFAULT '',
		site         TEXT         DEFAULT '',
		round        TEXT         DEFAULT '',
		date         VARCHAR(31)  DEFAULT '',
		time         VARCHAR(31)  DEFAULT '',
		time_control VARCHAR(63)  DEFAULT '',
		white        VARCHAR(255) NOT NULL,
		white_title  VARCHAR(7)   DEFAULT '',
		white_elo    INT          DEFAULT 0,
		white_fide   INT          DEFAULT 0,
		black        VARCHAR(255) NOT NULL,
		black_title  VARCHAR(7)   DEFAULT '',
		black_elo    INT          DEFAULT 0,
		black_fide   INT          DEFAULT 0,
		eco          VARCHAR(7)   DEFAULT '',
		opening      TEXT         DEFAULT '',
		variation    TEXT         DEFAULT '',
		result       VARCHAR(15)  DEFAULT '',
		tags         TEXT         NOT NULL,
		moves        TEXT         NOT NULL,
		fingerprint  BIGINT       DEFAULT 0
	)`, table)
}

// sqlStore is the database/sql implementation shared by the backends.
type sqlStore struct {
	db     *sql.DB
	table  string
	upsert string
}

func newSQLStore(ctx context.Context, db *sql.DB, table string, placeholder func(int) string, migrations []Migration) (*sqlStore, error) {
	if err := config.ValidateTable(table); err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db, table, migrations); err != nil {
		return nil, err
	}
	return &sqlStore{
		db:     db,
		table:  table,
		upsert: upsertStatement(table, placeholder),
	}, nil
}

// Upsert inserts rec or replaces the row with the same ID.
func (s *sqlStore) Upsert(ctx context.Context, rec *record.Record) error {
	if _, err := s.db.ExecContext(ctx, s.upsert, rowValues(rec)...); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", rec.ID, err)
	}
	return nil
}

// Close closes the database handle.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Open connects to the configured backend, runs its migrations and wraps
// it in a rate limiter when cfg.Rate is set.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Backend {
	case config.Postgres:
		st, err = OpenPostgres(ctx, cfg.PostgresURI, cfg.Table)
	case config.SQLite:
		st, err = OpenSQLite(ctx, cfg.SQLitePath, cfg.Table)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Backend, errors.ErrUnsupportedBackend)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Rate > 0 {
		return NewThrottled(st, cfg.Rate, cfg.Burst), nil
	}
	return st, nil
}
