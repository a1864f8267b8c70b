// Package ports defines the interfaces between the cache core and its
// collaborators: the filesystem stat/digest layer, the persistent record
// store and the progress surface.
package ports

import "go.trai.ch/memo/internal/core/domain"

// RecordStore persists action entries across runs of the tool. The
// on-disk format is the store's own concern; key stability is what makes
// the persisted cache valid across process restarts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the entry for a given key.
	// Returns nil, nil if not found.
	Get(root string, key domain.Key) (*domain.ActionEntry, error)

	// Put stores the entry, replacing any previous one for the same key.
	Put(root string, entry domain.ActionEntry) error

	// List returns every stored entry.
	List(root string) ([]domain.ActionEntry, error)
}
