package domain

// FileFingerprint records what a stat (and optionally a content digest) of
// an action output observed, in enough detail to decide "changed vs.
// unchanged" without re-reading the file when avoidable.
//
// The zero value is the absent sentinel: the path does not exist as a
// regular file (missing, a directory, a symlink needing special handling,
// or a purely synthetic output).
type FileFingerprint struct {
	// Exists is false for the absent sentinel.
	Exists bool `json:"exists"`
	// Size is the file size in bytes.
	Size int64 `json:"size,omitzero"`
	// MTimeNanos is the modification time in UnixNano.
	MTimeNanos int64 `json:"mtime_nanos,omitzero"`
	// Digest is the xxhash of the file content, valid only if HasDigest is set.
	Digest uint64 `json:"digest,omitzero"`
	// HasDigest indicates whether Digest was populated.
	HasDigest bool `json:"has_digest,omitzero"`
}

// AbsentFingerprint returns the sentinel for a path that does not exist on
// the filesystem as a regular file.
func AbsentFingerprint() FileFingerprint {
	return FileFingerprint{}
}

// Unchanged reports whether other describes the same observed state.
// When both fingerprints carry a content digest, size and digest decide;
// otherwise size and modification time decide. Absent compares unchanged
// only against absent.
func (f FileFingerprint) Unchanged(other FileFingerprint) bool {
	if f.Exists != other.Exists {
		return false
	}
	if !f.Exists {
		return true
	}
	if f.Size != other.Size {
		return false
	}
	if f.HasDigest && other.HasDigest {
		return f.Digest == other.Digest
	}
	return f.MTimeNanos == other.MTimeNanos
}

// OverrideFingerprint is metadata supplied by the execution layer for an
// output whose FileFingerprint cannot be derived from a plain stat of the
// final path, e.g. a remotely-fetched object only known by digest or a
// runfiles-tree member. When present for an artifact it is authoritative
// and the plain fingerprint must not be consulted.
type OverrideFingerprint struct {
	// Digest is the externally supplied content digest, hex encoded.
	Digest string `json:"digest"`
	// Size is the object size in bytes, if known.
	Size int64 `json:"size,omitzero"`
}
