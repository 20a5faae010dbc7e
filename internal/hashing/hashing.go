// Package hashing computes move-sequence fingerprints and provides a
// fingerprint-keyed index for downstream duplicate detection.
package hashing

import (
	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// DefaultSeed seeds the fingerprint accumulator. Changing it invalidates
// every fingerprint already stored.
const DefaultSeed uint64 = 0x6d75_6466_6973_68

// Fingerprinter hashes move sequences with a fixed seed.
// Not for security use.
type Fingerprinter struct {
	seed uint64
}

// NewFingerprinter creates a Fingerprinter with the given seed.
func NewFingerprinter(seed uint64) *Fingerprinter {
	return &Fingerprinter{seed: seed}
}

// Sum streams every move's bytes, in order, through one xxhash64 digest.
func (f *Fingerprinter) Sum(moves []string) uint64 {
	d := xxhash.NewWithSeed(f.seed)
	for _, m := range moves {
		_, _ = d.WriteString(m) // never fails
	}
	return d.Sum64()
}

var defaultFingerprinter = NewFingerprinter(DefaultSeed)

// Fingerprint hashes moves with DefaultSeed.
func Fingerprint(moves []string) uint64 {
	return defaultFingerprinter.Sum(moves)
}

// DuplicateChecker is implemented by both the plain and the thread-safe index.
type DuplicateChecker interface {
	CheckAndAdd(rec *record.Record) (firstID string, duplicate bool)
	DuplicateCount() int
	UniqueCount() int
}

// DuplicateIndex remembers the first record ID seen for each fingerprint.
type DuplicateIndex struct {
	seen           map[uint64]string
	maxCapacity    int // 0 means unlimited
	duplicateCount int
}

// NewDuplicateIndex creates an index. maxCapacity of 0 means unlimited;
// once full, new fingerprints are no longer remembered.
func NewDuplicateIndex(maxCapacity int) *DuplicateIndex {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &DuplicateIndex{
		seen:        make(map[uint64]string),
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd reports whether rec's fingerprint was seen before, returning the
// ID of the first record that carried it. Unseen fingerprints are added.
func (d *DuplicateIndex) CheckAndAdd(rec *record.Record) (string, bool) {
	if first, ok := d.seen[rec.Fingerprint]; ok {
		d.duplicateCount++
		return first, true
	}
	if !d.IsFull() {
		d.seen[rec.Fingerprint] = rec.ID
	}
	return "", false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateIndex) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct fingerprints remembered.
func (d *DuplicateIndex) UniqueCount() int {
	return len(d.seen)
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateIndex) IsFull() bool {
	return d.maxCapacity > 0 && len(d.seen) >= d.maxCapacity
}
