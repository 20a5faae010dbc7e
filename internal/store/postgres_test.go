package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

func sampleRecord() *record.Record {
	rec := record.New("lichess_db", 3)
	rec.AddTag("Event", "Rated Blitz game", `[Event "Rated Blitz game"]`)
	rec.AddTag("Site", "https://lichess.org/abc", `[Site "https://lichess.org/abc"]`)
	rec.AddTag("White", "alice", `[White "alice"]`)
	rec.AddTag("WhiteElo", "1500", `[WhiteElo "1500"]`)
	rec.AddTag("Black", "bob", `[Black "bob"]`)
	rec.AddTag("BlackElo", "?", `[BlackElo "?"]`)
	rec.AddTag("Result", "1-0", `[Result "1-0"]`)
	rec.AddTag("ECO", "C20", `[ECO "C20"]`)
	rec.AddMoveLine("1. e4 e5 2. Nf3 1-0")
	rec.Moves = []string{"e4", "e5", "Nf3"}
	rec.Fingerprint = 0xfedcba9876543210
	return rec
}

func expectPostgresMigrations(mock sqlmock.Sqlmock, table string, applied bool) {
	tableRows := sqlmock.NewRows([]string{"one"})
	indexRows := sqlmock.NewRows([]string{"one"})
	if applied {
		tableRows.AddRow(1)
		indexRows.AddRow(1)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM pg_tables WHERE schemaname = 'public' AND tablename = $1")).
		WithArgs(table).
		WillReturnRows(tableRows)
	if !applied {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE " + table + " (")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM pg_indexes")).
		WithArgs(table + "_fingerprint_idx").
		WillReturnRows(indexRows)
	if !applied {
		mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX " + table + "_fingerprint_idx ON " + table + " (fingerprint)")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestNewPostgresStore_Migrates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPostgresMigrations(mock, "pgn", false)

	_, err = NewPostgresStore(context.Background(), db, "pgn")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStore_AlreadyMigrated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPostgresMigrations(mock, "games", true)

	_, err = NewPostgresStore(context.Background(), db, "games")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStore_MigrationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("permission denied")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM pg_tables")).
		WithArgs("pgn").
		WillReturnRows(sqlmock.NewRows([]string{"one"}))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE pgn")).
		WillReturnError(boom)

	_, err = NewPostgresStore(context.Background(), db, "pgn")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "migration create table")
}

func TestNewPostgresStore_RejectsTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewPostgresStore(context.Background(), db, "pgn; DROP TABLE pgn")
	assert.ErrorIs(t, err, pgnerrors.ErrInvalidConfig)
}

func TestPostgresStore_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPostgresMigrations(mock, "pgn", true)
	store, err := NewPostgresStore(context.Background(), db, "pgn")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pgn (id, event, site")).
		WithArgs(
			"lichess_db.3", "Rated Blitz game", "https://lichess.org/abc", "", "", "", "",
			"alice", "", 1500, 0,
			"bob", "", 0, 0,
			"C20", "", "", "1-0",
			sampleRecord().TagsText, "e4 e5 Nf3", int64(-0x123456789abcdf0),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Upsert(context.Background(), sampleRecord())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectPostgresMigrations(mock, "pgn", true)
	store, err := NewPostgresStore(context.Background(), db, "pgn")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pgn")).
		WillReturnError(errors.New("connection reset"))

	err = store.Upsert(context.Background(), sampleRecord())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lichess_db.3")
}

func TestUpsertStatement(t *testing.T) {
	stmt := upsertStatement("pgn", postgresPlaceholder)

	assert.Contains(t, stmt, "INSERT INTO pgn (id, event, site, round, date, time, time_control,")
	assert.Contains(t, stmt, "VALUES ($1, $2, $3,")
	assert.Contains(t, stmt, "$22)")
	assert.Contains(t, stmt, "ON CONFLICT (id) DO UPDATE SET event = EXCLUDED.event,")
	assert.Contains(t, stmt, "fingerprint = EXCLUDED.fingerprint")
	assert.NotContains(t, stmt, "id = EXCLUDED.id")

	assert.Len(t, rowValues(sampleRecord()), len(columns))
}
