// Package fs implements the filesystem stat/digest layer that supplies
// fingerprints for action outputs.
package fs

import (
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter derives FileFingerprints from the filesystem.
type Fingerprinter struct {
	// digest enables content hashing on top of the stat. Without it a
	// fingerprint carries only size and mtime, which is cheaper but lets
	// a same-size same-mtime rewrite go unnoticed.
	digest bool
}

// NewFingerprinter creates a Fingerprinter. When digest is true, every
// regular file is additionally content-hashed.
func NewFingerprinter(digest bool) *Fingerprinter {
	return &Fingerprinter{digest: digest}
}

// Fingerprint stats path and returns its fingerprint. Anything that is
// not a regular file (missing paths, directories, symlinks, devices)
// yields the absent sentinel: such outputs need override metadata from
// the execution layer rather than a plain stat.
func (f *Fingerprinter) Fingerprint(path string) (domain.FileFingerprint, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.AbsentFingerprint(), nil
		}
		return domain.FileFingerprint{}, errors.Join(domain.ErrPathStatFailed, err)
	}

	if !info.Mode().IsRegular() {
		return domain.AbsentFingerprint(), nil
	}

	fp := domain.FileFingerprint{
		Exists:     true,
		Size:       info.Size(),
		MTimeNanos: info.ModTime().UnixNano(),
	}

	if f.digest {
		digest, err := f.computeFileHash(path)
		if err != nil {
			return domain.FileFingerprint{}, err
		}
		fp.Digest = digest
		fp.HasDigest = true
	}

	return fp, nil
}

// computeFileHash computes the XXHash of a file's content.
func (f *Fingerprinter) computeFileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, errors.Join(domain.ErrFileHashFailed, err)
	}

	return hasher.Sum64(), nil
}
