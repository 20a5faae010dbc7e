package hashing

import (
	"sync"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// ThreadSafeDuplicateIndex wraps DuplicateIndex with mutex protection for
// use across archive workers.
type ThreadSafeDuplicateIndex struct {
	index *DuplicateIndex
	mu    sync.RWMutex
}

// NewThreadSafeDuplicateIndex creates a new thread-safe index.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeDuplicateIndex(maxCapacity int) *ThreadSafeDuplicateIndex {
	return &ThreadSafeDuplicateIndex{
		index: NewDuplicateIndex(maxCapacity),
	}
}

// CheckAndAdd atomically checks and records rec's fingerprint.
func (d *ThreadSafeDuplicateIndex) CheckAndAdd(rec *record.Record) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index.CheckAndAdd(rec)
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafeDuplicateIndex) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.DuplicateCount()
}

// UniqueCount returns the number of distinct fingerprints remembered.
func (d *ThreadSafeDuplicateIndex) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.UniqueCount()
}
