// processor.go - Archive processing and output functions
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
	"github.com/lgbarn/pgn-ingest-go/internal/hashing"
	"github.com/lgbarn/pgn-ingest-go/internal/output"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
	"github.com/lgbarn/pgn-ingest-go/internal/segment"
	"github.com/lgbarn/pgn-ingest-go/internal/store"
	"github.com/lgbarn/pgn-ingest-go/internal/validate"
	"github.com/lgbarn/pgn-ingest-go/internal/worker"
)

// progressEvery is the number of accepted games between progress lines.
const progressEvery = 100000

type mode int

const (
	modeRead mode = iota
	modeValidate
	modeCount
	modeStore
)

// ProcessingContext holds all processing state shared by the workers.
type ProcessingContext struct {
	cfg       *config.Config
	mode      mode
	validator *validate.Validator
	detector  hashing.DuplicateChecker
	sink      *recordSink
	store     store.Store
	logMu     sync.Mutex
}

type runOption func(*ProcessingContext)

func withStore(s store.Store) runOption {
	return func(pc *ProcessingContext) {
		pc.store = s
	}
}

// run processes every archive and reports per-archive counts and totals.
// The first stream error aborts the remaining archives and is returned.
func run(ctx context.Context, cfg *config.Config, m mode, paths []string, opts ...runOption) error {
	pc := &ProcessingContext{
		cfg:       cfg,
		mode:      m,
		validator: validate.NewWithFingerprinter(hashing.NewFingerprinter(cfg.Seed)),
	}
	for _, opt := range opts {
		opt(pc)
	}
	if cfg.Duplicate.Suppress {
		pc.detector = hashing.NewThreadSafeDuplicateIndex(cfg.Duplicate.Capacity)
	}
	if m == modeRead {
		sink, err := newRecordSink(cfg)
		if err != nil {
			return err
		}
		pc.sink = sink
	}

	results := worker.Run(ctx, paths, cfg.Jobs, true, func(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
		return processArchive(ctx, pc, item)
	})

	var firstErr error
	if pc.sink != nil {
		firstErr = pc.sink.Close()
	}

	var total worker.ProcessResult
	for _, r := range results {
		total.Games += r.Games
		total.BadRecords += r.BadRecords
		total.Duplicates += r.Duplicates
		total.Written += r.Written
		if r.Error != nil && firstErr == nil {
			firstErr = r.Error
		}
		if cfg.Selection.Count {
			if len(paths) > 1 {
				fmt.Fprintf(cfg.OutputFile, "%d %s\n", r.Games, r.Path)
			} else {
				fmt.Fprintf(cfg.OutputFile, "%d\n", r.Games)
			}
		}
	}

	reportStatistics(pc, total, len(results))
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return firstErr
}

// processArchive runs one Segmenter over item.Path to its end.
func processArchive(ctx context.Context, pc *ProcessingContext, item worker.WorkItem) worker.ProcessResult {
	res := worker.ProcessResult{Path: item.Path, Index: item.Index}
	cfg := pc.cfg

	seg, err := segment.Open(item.Path, segment.WithValidator(pc.validator))
	if err != nil {
		res.Error = err
		return res
	}
	defer seg.Close()

	name := filepath.Base(item.Path)
	for {
		if err := ctx.Err(); err != nil {
			res.Error = err
			return res
		}

		switch out := seg.Next().(type) {
		case segment.Game:
			res.Games++
			if res.Games%progressEvery == 0 {
				pc.logf(2, "%s: %d games, %s\n", name, res.Games, seg.Progress())
			}
			if cfg.Selection.Past(res.Games) {
				res.Games--
				return res
			}
			if !cfg.Selection.Selected(res.Games) {
				continue
			}
			if pc.detector != nil {
				if first, dup := pc.detector.CheckAndAdd(out.Record); dup {
					res.Duplicates++
					pc.logf(2, "%s: %s duplicates %s\n", name, out.Record.ID, first)
					continue
				}
			}
			if err := pc.emit(ctx, out.Record); err != nil {
				res.Error = err
				return res
			}
			if pc.mode == modeRead || pc.mode == modeStore {
				res.Written++
			}
		case segment.BadRecord:
			res.BadRecords++
			pc.logf(1, "%s: %s", name, out.String())
		case segment.Error:
			res.Error = out.Err
			return res
		case segment.Ended:
			pc.logf(2, "%s: done, %s\n", name, seg.Progress())
			return res
		}
	}
}

// emit hands an accepted record to the mode's destination.
func (pc *ProcessingContext) emit(ctx context.Context, rec *record.Record) error {
	switch pc.mode {
	case modeRead:
		return pc.sink.Write(rec)
	case modeStore:
		return pc.store.Upsert(ctx, rec)
	default:
		return nil
	}
}

// logf serializes diagnostics from concurrent workers.
func (pc *ProcessingContext) logf(level int, format string, args ...interface{}) {
	pc.logMu.Lock()
	defer pc.logMu.Unlock()
	pc.cfg.Logf(level, format, args...)
}

func reportStatistics(pc *ProcessingContext, total worker.ProcessResult, archives int) {
	if pc.mode == modeStore {
		pc.logf(1, "%d game(s) stored in %s table %s.\n", total.Written, pc.cfg.Store.Backend, pc.cfg.Store.Table)
	}
	if pc.detector != nil {
		pc.logf(1, "%d game(s) accepted, %d rejected, %d duplicate(s) in %d archive(s).\n",
			total.Games, total.BadRecords, total.Duplicates, archives)
	} else {
		pc.logf(1, "%d game(s) accepted, %d rejected in %d archive(s).\n",
			total.Games, total.BadRecords, archives)
	}
}

// recordSink serializes writes from concurrent workers onto one RecordWriter.
type recordSink struct {
	mu     sync.Mutex
	w      output.RecordWriter
	split  *SplitWriter
	closer io.Closer
}

func newRecordSink(cfg *config.Config) (*recordSink, error) {
	s := &recordSink{}
	dest := cfg.OutputFile

	switch {
	case cfg.Output.Split > 0:
		base := "output"
		if cfg.Output.Path != "" {
			base = strings.TrimSuffix(cfg.Output.Path, filepath.Ext(cfg.Output.Path))
		}
		s.split = NewSplitWriterWithPattern(base, cfg.Output.Split, "%s_%d"+extensionFor(cfg.Output.Format))
		dest = s.split
	case cfg.Output.Path != "":
		f, err := os.Create(cfg.Output.Path) //nolint:gosec // G304: output path is user supplied
		if err != nil {
			return nil, fmt.Errorf("creating output file %s: %w", cfg.Output.Path, err)
		}
		s.closer = f
		dest = f
	}

	w, err := output.NewWriter(dest, cfg)
	if err != nil {
		return nil, err
	}
	s.w = w
	return s, nil
}

// Write writes one record. With splitting enabled each record is flushed
// on its own so that file boundaries fall between games.
func (s *recordSink) Write(rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.w.WriteRecord(rec); err != nil {
		return err
	}
	if s.split == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		return err
	}
	s.split.IncrementGameCount()
	return nil
}

// Close flushes pending output and closes any file the sink opened.
func (s *recordSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.w.Close()
	if s.split != nil {
		if cerr := s.split.Close(); err == nil {
			err = cerr
		}
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func extensionFor(format config.OutputFormat) string {
	if format == config.JSONFormat {
		return ".jsonl"
	}
	return ".pgn"
}

// SplitWriter handles writing to multiple output files.
// NOT thread-safe: only accessed under the recordSink mutex.
type SplitWriter struct {
	baseName     string
	pattern      string // filename pattern with %s for base and %d for number
	gamesPerFile int
	currentFile  *os.File
	fileNumber   int
	gameCount    int
}

// NewSplitWriterWithPattern creates a new split writer with a custom filename pattern
func NewSplitWriterWithPattern(baseName string, gamesPerFile int, pattern string) *SplitWriter {
	return &SplitWriter{
		baseName:     baseName,
		pattern:      pattern,
		gamesPerFile: gamesPerFile,
		fileNumber:   1,
	}
}

// Write implements io.Writer
func (sw *SplitWriter) Write(p []byte) (n int, err error) {
	if sw.currentFile == nil || sw.gameCount >= sw.gamesPerFile {
		if sw.currentFile != nil {
			_ = sw.currentFile.Close() // cleanup before creating new file
			sw.fileNumber++
		}
		filename := fmt.Sprintf(sw.pattern, sw.baseName, sw.fileNumber)
		sw.currentFile, err = os.Create(filename) //nolint:gosec // G304: filename is derived from user-specified base name
		if err != nil {
			return 0, err
		}
		sw.gameCount = 0
	}
	return sw.currentFile.Write(p)
}

// IncrementGameCount should be called after each game is written
func (sw *SplitWriter) IncrementGameCount() {
	sw.gameCount++
}

// Close closes the current file
func (sw *SplitWriter) Close() error {
	if sw.currentFile != nil {
		return sw.currentFile.Close()
	}
	return nil
}
