// Package source supplies text lines from archive files, decompressing
// them according to the file name suffix.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// LineSource yields successive lines. ReadLine returns io.EOF, with an
// empty line, once the input is exhausted. A final line without a
// terminating newline is returned normally.
type LineSource interface {
	ReadLine() (string, error)
}

// Codec identifies a whole-file compression format.
type Codec int

const (
	Plain Codec = iota
	Bzip2
	Gzip
	Zstd
)

var codecNames = [...]string{
	Plain: "plain",
	Bzip2: "bzip2",
	Gzip:  "gzip",
	Zstd:  "zstd",
}

// String returns the codec name.
func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return "unknown"
}

// CodecFor selects the codec from the path suffix.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		return Bzip2
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	}
	return Plain
}

// Prefix returns the record identifier prefix for path: the base name
// truncated at its first dot.
func Prefix(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// byteOrderMark is dropped from the start of the first line.
const byteOrderMark = "\ufeff"

// Reader is a LineSource over any io.Reader.
type Reader struct {
	br      *bufio.Reader
	started bool
}

// NewReader creates a line reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// ReadLine returns the next line including its '\n', if any.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if !r.started {
		r.started = true
		line = strings.TrimPrefix(line, byteOrderMark)
	}
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// File is a LineSource over an archive file on disk.
type File struct {
	*Reader
	name    string
	codec   Codec
	size    int64
	counter *countingReader
	closers []func() error
}

// Open opens path, choosing the codec once from its suffix.
func Open(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // G304: archive paths are user supplied
	if err != nil {
		return nil, pgnerrors.Wrapf(err, "open %s", path)
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	counter := &countingReader{r: f}
	file := &File{
		name:    path,
		codec:   CodecFor(path),
		size:    size,
		counter: counter,
		closers: []func() error{f.Close},
	}

	var r io.Reader = counter
	switch file.codec {
	case Bzip2:
		zr, err := bzip2.NewReader(counter, nil)
		if err != nil {
			_ = f.Close()
			return nil, pgnerrors.Wrapf(err, "bzip2 %s", path)
		}
		file.closers = append([]func() error{zr.Close}, file.closers...)
		r = zr
	case Gzip:
		zr, err := gzip.NewReader(counter)
		if err != nil {
			_ = f.Close()
			return nil, pgnerrors.Wrapf(err, "gzip %s", path)
		}
		file.closers = append([]func() error{zr.Close}, file.closers...)
		r = zr
	case Zstd:
		zr, err := zstd.NewReader(counter)
		if err != nil {
			_ = f.Close()
			return nil, pgnerrors.Wrapf(err, "zstd %s", path)
		}
		file.closers = append([]func() error{func() error { zr.Close(); return nil }}, file.closers...)
		r = zr
	}

	file.Reader = NewReader(r)
	return file, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Prefix returns the record identifier prefix for this file.
func (f *File) Prefix() string {
	return Prefix(f.name)
}

// Codec returns the decompression codec in use.
func (f *File) Codec() Codec {
	return f.codec
}

// BytesRead returns the number of bytes consumed from disk so far.
func (f *File) BytesRead() int64 {
	return f.counter.Count()
}

// Size returns the on-disk size of the file, or 0 if unknown.
func (f *File) Size() int64 {
	return f.size
}

// Progress renders consumed and total on-disk bytes, e.g. "12.50MB / 1.20GB".
func (f *File) Progress() string {
	read := bytesize.ByteSize(f.BytesRead())
	if f.size <= 0 {
		return read.String()
	}
	return fmt.Sprintf("%s / %s", read, bytesize.ByteSize(f.size))
}

// Close releases the decompressor and the file.
func (f *File) Close() error {
	var first error
	for _, c := range f.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	f.closers = nil
	return first
}

// countingReader counts bytes read from the underlying reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	atomic.AddInt64(&c.n, int64(n))
	return n, err
}

// Count returns the bytes read so far. Safe to call from another goroutine.
func (c *countingReader) Count() int64 {
	return atomic.LoadInt64(&c.n)
}
