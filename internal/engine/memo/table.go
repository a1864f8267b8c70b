// Package memo implements the in-process memoization table: the shared
// registry the evaluator publishes action records into and reads them
// back from.
package memo

import (
	"sync"

	"go.trai.ch/memo/internal/core/domain"
)

// Table maps memoization keys to action records. Records are immutable,
// so readers need no synchronization once a record is published; the
// table's only job is to make publication itself atomic.
type Table struct {
	records sync.Map // domain.Key -> *domain.ActionRecord
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Publish inserts record under key if absent and returns the record now
// held, plus whether an existing record was kept. Two goroutines racing
// to publish the same key both end up reading the same winner; the
// evaluator guarantees at most one concurrent build per key, so a lost
// race means the value was already computed.
func (t *Table) Publish(key domain.Key, record *domain.ActionRecord) (*domain.ActionRecord, bool) {
	existing, loaded := t.records.LoadOrStore(key, record)
	return existing.(*domain.ActionRecord), loaded
}

// Supersede replaces the record for key after the evaluator reran the
// action. The old record stays valid for readers that already hold it.
func (t *Table) Supersede(key domain.Key, record *domain.ActionRecord) {
	t.records.Store(key, record)
}

// Get returns the record published under key, if any.
func (t *Table) Get(key domain.Key) (*domain.ActionRecord, bool) {
	v, ok := t.records.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*domain.ActionRecord), true
}

// Delete removes the record for key, used when the evaluator invalidates
// a node without an immediate recomputation.
func (t *Table) Delete(key domain.Key) {
	t.records.Delete(key)
}

// Keys returns a snapshot of all published keys.
func (t *Table) Keys() []domain.Key {
	var keys []domain.Key
	t.records.Range(func(k, _ any) bool {
		keys = append(keys, k.(domain.Key))
		return true
	})
	return keys
}

// Len returns the number of published records.
func (t *Table) Len() int {
	n := 0
	t.records.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
