package domain

import "go.trai.ch/zerr"

// Errors in this package fall into two classes. Usage-contract violations
// (incompatible orders, conflicting artifact data, the wrong fingerprint
// accessor) indicate a bug in a caller and are never coerced or retried.
// Structural violations (a cyclic closure) indicate the tool itself is in
// an inconsistent state. There is no transient class: every input here is
// an already-resolved in-memory value.
var (
	// ErrIncompatibleOrder is returned when closure sets with different
	// orders are combined.
	ErrIncompatibleOrder = zerr.New("incompatible closure order")

	// ErrCyclicClosure is returned when a closure set is reachable from
	// itself. Construction prevents this; traversal checks defensively.
	ErrCyclicClosure = zerr.New("cyclic closure")

	// ErrConflictingArtifactData is returned when an artifact appears in
	// both the plain and the override fingerprint maps.
	ErrConflictingArtifactData = zerr.New("artifact present in both plain and override data")

	// ErrWrongAccessor is returned when the plain fingerprint is requested
	// for an artifact that carries an override fingerprint.
	ErrWrongAccessor = zerr.New("plain fingerprint requested for overridden artifact")

	// ErrUnknownArtifact is returned when a fingerprint is requested for an
	// artifact the action did not produce.
	ErrUnknownArtifact = zerr.New("artifact not produced by this action")

	// ErrStoreCreateFailed is returned when the record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create record store directory")

	// ErrStoreReadFailed is returned when a stored record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read action record")

	// ErrStoreUnmarshalFailed is returned when a stored record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal action record")

	// ErrStoreMarshalFailed is returned when an action record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal action record")

	// ErrStoreWriteFailed is returned when an action record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write action record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestReadFailed is returned when the action manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read action manifest")

	// ErrManifestParseFailed is returned when the action manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse action manifest")

	// ErrRecordNotFound is returned when a requested action record does not exist.
	ErrRecordNotFound = zerr.New("action record not found")

	// ErrAmbiguousActionID is returned when an action ID prefix matches
	// more than one stored record.
	ErrAmbiguousActionID = zerr.New("action ID prefix is ambiguous")

	// ErrPathStatFailed is returned when stating a path fails for a reason
	// other than the path not existing.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrFileHashFailed is returned when hashing a file's content fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrDriftDetected is returned when recorded fingerprints no longer
	// match the filesystem.
	ErrDriftDetected = zerr.New("recorded output metadata does not match filesystem")
)
