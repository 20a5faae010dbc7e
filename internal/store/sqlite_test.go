package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:", "pgn")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_UpsertRoundTrip(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Upsert(ctx, rec))

	var (
		white, black, result, moves, tags string
		whiteElo, blackElo                int
		fingerprint                       int64
	)
	row := s.db.QueryRowContext(ctx,
		"SELECT white, black, result, moves, tags, white_elo, black_elo, fingerprint FROM pgn WHERE id = ?", rec.ID)
	require.NoError(t, row.Scan(&white, &black, &result, &moves, &tags, &whiteElo, &blackElo, &fingerprint))

	assert.Equal(t, "alice", white)
	assert.Equal(t, "bob", black)
	assert.Equal(t, "1-0", result)
	assert.Equal(t, "e4 e5 Nf3", moves)
	assert.Equal(t, rec.TagsText, tags)
	assert.Equal(t, 1500, whiteElo)
	assert.Equal(t, 0, blackElo)
	assert.Equal(t, rec.Fingerprint, uint64(fingerprint))
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, s.Upsert(ctx, rec))

	rec.Tags["Result"] = "0-1"
	rec.Tags["White"] = "carol"
	require.NoError(t, s.Upsert(ctx, rec))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pgn").Scan(&n))
	assert.Equal(t, 1, n)

	var white, result string
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT white, result FROM pgn WHERE id = ?", rec.ID).Scan(&white, &result))
	assert.Equal(t, "carol", white)
	assert.Equal(t, "0-1", result)
}

func TestSQLiteStore_MigrationsIdempotent(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, s.db, "pgn", SQLiteMigrations))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE name = ?", "pgn_fingerprint_idx").Scan(&n))
	assert.Equal(t, 1, n)

	again, err := NewSQLiteStore(ctx, s.db, "pgn")
	require.NoError(t, err)
	assert.NotNil(t, again)
}

func TestSQLiteStore_SeparateTables(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	other, err := NewSQLiteStore(ctx, s.db, "games_2013")
	require.NoError(t, err)

	require.NoError(t, other.Upsert(ctx, sampleRecord()))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pgn").Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games_2013").Scan(&n))
	assert.Equal(t, 1, n)
}
