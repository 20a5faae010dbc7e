package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
	"github.com/lgbarn/pgn-ingest-go/internal/testutil"
)

// TestRun_StopsPastEnd checks that reading ends at the first game past the
// selection, so the cut-short record after it is never reached.
func TestRun_StopsPastEnd(t *testing.T) {
	dir := t.TempDir()
	text := testutil.JoinGames(
		game("one", "1-0", "1. e4 e5 2. Nf3 1-0"),
		game("two", "*", "1. d4 *"),
	) + "\n[Event \"three\"]\n"
	path := writeArchive(t, dir, "games.pgn", text)

	var stdout, stderr bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithRange(1, 1).
		WithOutput(&stdout).
		WithLog(&stderr).
		Build()

	if err := run(context.Background(), cfg, modeRead, []string{path}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	testutil.AssertContains(t, stdout.String(), "games.1\n")
	if strings.Contains(stdout.String(), "games.2") {
		t.Errorf("game past end printed:\n%s", stdout.String())
	}
	testutil.AssertContains(t, stderr.String(), "1 game(s) accepted, 0 rejected in 1 archive(s).")

	full := config.NewConfigBuilder().WithOutput(io.Discard).WithLog(io.Discard).Build()
	if err := run(context.Background(), full, modeRead, []string{path}); !errors.Is(err, pgnerrors.ErrTruncated) {
		t.Errorf("run() without end error = %v, want ErrTruncated", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "games.pgn", testutil.ScholarsMate)

	var stdout bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutput(&stdout).WithVerbosity(0).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, cfg, modeCount, []string{path}); err == nil {
		t.Error("run() with canceled context should fail")
	}
}

func TestSplitWriter(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "part")
	sw := NewSplitWriterWithPattern(base, 2, "%s_%d.pgn")

	for i := 0; i < 5; i++ {
		if _, err := sw.Write([]byte("game\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		sw.IncrementGameCount()
	}
	testutil.RequireNoError(t, sw.Close())

	want := map[string]string{
		"part_1.pgn": "game\ngame\n",
		"part_2.pgn": "game\ngame\n",
		"part_3.pgn": "game\n",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("ReadFile(%s) error = %v", name, err)
			continue
		}
		testutil.AssertEqual(t, string(data), content, name)
	}
	if _, err := os.Stat(filepath.Join(dir, "part_4.pgn")); !os.IsNotExist(err) {
		t.Errorf("unexpected part_4.pgn (err = %v)", err)
	}
}

func TestRecordSink_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "games.txt")
	cfg := config.NewConfigBuilder().Build()
	cfg.Output.Path = out

	sink, err := newRecordSink(cfg)
	testutil.RequireNoError(t, err)

	rec := record.New("games", 1)
	rec.AddTag("Result", "1-0", `[Result "1-0"]`)
	rec.AddMoveLine("1. e4 1-0")
	testutil.RequireNoError(t, sink.Write(rec))
	testutil.RequireNoError(t, sink.Close())

	data, err := os.ReadFile(out)
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, string(data), "games.1\n\n[Result \"1-0\"]\n\n1. e4 1-0\n\n\n")
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		format config.OutputFormat
		want   string
	}{
		{config.TextFormat, ".pgn"},
		{config.PGNFormat, ".pgn"},
		{config.JSONFormat, ".jsonl"},
	}
	for _, tt := range tests {
		if got := extensionFor(tt.format); got != tt.want {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
