package ports

import "go.trai.ch/memo/internal/core/domain"

// Fingerprinter observes the current on-disk state of a path.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint stats path and returns its fingerprint. A path that does
	// not exist as a regular file yields the absent sentinel, not an
	// error; errors are reserved for stat or read failures.
	Fingerprint(path string) (domain.FileFingerprint, error)
}
