package domain

import (
	"maps"
	"time"

	"go.trai.ch/zerr"
)

// ActionRecord is the memoized value attached to one successful action
// execution: the fingerprint of every produced artifact, plus an explicit
// override table for artifacts whose fingerprint cannot be derived from a
// plain stat of the final path.
//
// A record is immutable once built and safe to read from any number of
// goroutines without synchronization. The evaluator replaces the whole
// record when it reruns the action; nothing is ever mutated in place.
type ActionRecord struct {
	artifactData map[Artifact]FileFingerprint
	overrideData map[Artifact]OverrideFingerprint
}

// NewActionRecord builds a record from the plain fingerprint map and the
// override map. Both maps are copied. An artifact present in both maps is
// a caller bug and fails with ErrConflictingArtifactData.
func NewActionRecord(
	artifactData map[Artifact]FileFingerprint,
	overrideData map[Artifact]OverrideFingerprint,
) (*ActionRecord, error) {
	for a := range overrideData {
		if _, ok := artifactData[a]; ok {
			return nil, zerr.With(zerr.Wrap(ErrConflictingArtifactData, "building action record"), "artifact", a.Path())
		}
	}
	return &ActionRecord{
		artifactData: maps.Clone(artifactData),
		overrideData: maps.Clone(overrideData),
	}, nil
}

// FingerprintOf returns the plain fingerprint recorded for artifact.
// Requesting it for an artifact that has an override entry is a contract
// violation and fails with ErrWrongAccessor: the caller must use
// OverrideFingerprintOf, since the plain metadata would be stale or
// meaningless for such an artifact. An artifact the action never produced
// fails with ErrUnknownArtifact.
func (r *ActionRecord) FingerprintOf(artifact Artifact) (FileFingerprint, error) {
	if _, ok := r.overrideData[artifact]; ok {
		return FileFingerprint{}, zerr.With(zerr.Wrap(ErrWrongAccessor, "looking up plain fingerprint"), "artifact", artifact.Path())
	}
	fp, ok := r.artifactData[artifact]
	if !ok {
		return FileFingerprint{}, zerr.With(zerr.Wrap(ErrUnknownArtifact, "looking up plain fingerprint"), "artifact", artifact.Path())
	}
	return fp, nil
}

// OverrideFingerprintOf returns the override entry for artifact, if any.
// Absence is not an error; most artifacts never need one.
func (r *ActionRecord) OverrideFingerprintOf(artifact Artifact) (OverrideFingerprint, bool) {
	ofp, ok := r.overrideData[artifact]
	return ofp, ok
}

// AllPlainFingerprints returns a copy of the full plain-metadata map, for
// bulk consistency checking against live filesystem state.
func (r *ActionRecord) AllPlainFingerprints() map[Artifact]FileFingerprint {
	return maps.Clone(r.artifactData)
}

// AllOverrideFingerprints returns a copy of the override map, for
// persistence.
func (r *ActionRecord) AllOverrideFingerprints() map[Artifact]OverrideFingerprint {
	return maps.Clone(r.overrideData)
}

// ActionEntry pairs an action with the record of its last successful
// execution. It is the unit the record store persists and the drift
// checker scans.
type ActionEntry struct {
	Action     Action
	Record     *ActionRecord
	RecordedAt time.Time
}

// Key returns the memoization key of the entry's action.
func (e *ActionEntry) Key() Key {
	return KeyFor(&e.Action)
}
