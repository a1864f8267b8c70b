// Package cas implements the persistent action-record store using a
// file-per-action strategy.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore. Each entry is one JSON file named
// by the hash of its memoization key, so key stability across process
// restarts is exactly what keeps the store valid across runs.
type Store struct {
	// storePath is the root-relative directory holding the entries.
	storePath string
}

// NewStore creates a store persisting under the given root-relative path.
// An empty path selects the default location.
func NewStore(storePath string) *Store {
	if storePath == "" {
		storePath = domain.DefaultStorePath()
	}
	return &Store{storePath: storePath}
}

// entryFile is the on-disk form of a domain.ActionEntry.
type entryFile struct {
	Key        string                                         `json:"key"`
	Action     domain.Action                                  `json:"action"`
	Artifacts  map[domain.Artifact]domain.FileFingerprint     `json:"artifacts,omitempty"`
	Overrides  map[domain.Artifact]domain.OverrideFingerprint `json:"overrides,omitempty"`
	RecordedAt time.Time                                      `json:"recorded_at"`
}

// Get retrieves the entry for a given key.
// Returns nil, nil if not found.
func (s *Store) Get(root string, key domain.Key) (*domain.ActionEntry, error) {
	filename := s.getFilename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrStoreReadFailed, err)
	}

	return decodeEntry(data)
}

// Put stores the entry, replacing any previous one for the same key.
func (s *Store) Put(root string, entry domain.ActionEntry) error {
	file := entryFile{
		Key:        entry.Key().String(),
		Action:     entry.Action,
		Artifacts:  entry.Record.AllPlainFingerprints(),
		Overrides:  entry.Record.AllOverrideFingerprints(),
		RecordedAt: entry.RecordedAt,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStoreMarshalFailed, err)
	}

	filename := s.getFilename(root, entry.Key())
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return errors.Join(domain.ErrStoreCreateFailed, err)
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, err)
	}

	return nil
}

// List returns every stored entry.
func (s *Store) List(root string) ([]domain.ActionEntry, error) {
	dir := filepath.Join(root, s.storePath)
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrStoreReadFailed, err)
	}

	var entries []domain.ActionEntry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}

		//nolint:gosec // Path comes from a directory listing of the store
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, errors.Join(domain.ErrStoreReadFailed, err)
		}

		entry, err := decodeEntry(data)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to decode store entry"), "file", f.Name())
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

func decodeEntry(data []byte) (*domain.ActionEntry, error) {
	var file entryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrStoreUnmarshalFailed, err)
	}

	record, err := domain.NewActionRecord(file.Artifacts, file.Overrides)
	if err != nil {
		return nil, err
	}

	return &domain.ActionEntry{
		Action:     file.Action,
		Record:     record,
		RecordedAt: file.RecordedAt,
	}, nil
}

func (s *Store) getFilename(root string, key domain.Key) string {
	hash := sha256.Sum256([]byte(key.String()))
	hexHash := hex.EncodeToString(hash[:])
	return filepath.Join(root, s.storePath, hexHash+".json")
}
