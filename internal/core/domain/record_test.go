package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestActionRecord_RoundTrip(t *testing.T) {
	a := domain.NewArtifact("bin/app")
	b := domain.NewArtifact("bin/app.runfiles")

	fp1 := domain.FileFingerprint{Exists: true, Size: 42, MTimeNanos: 1700000000, Digest: 0xdead, HasDigest: true}
	ofp1 := domain.OverrideFingerprint{Digest: "abc123", Size: 7}

	rec, err := domain.NewActionRecord(
		map[domain.Artifact]domain.FileFingerprint{a: fp1},
		map[domain.Artifact]domain.OverrideFingerprint{b: ofp1},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := rec.FingerprintOf(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fp1 {
		t.Errorf("expected %+v, got %+v", fp1, got)
	}

	ofp, ok := rec.OverrideFingerprintOf(b)
	if !ok || ofp != ofp1 {
		t.Errorf("expected override %+v, got %+v (ok=%v)", ofp1, ofp, ok)
	}

	// The plain accessor must refuse an overridden artifact.
	if _, err := rec.FingerprintOf(b); !errors.Is(err, domain.ErrWrongAccessor) {
		t.Fatalf("expected ErrWrongAccessor, got %v", err)
	}
}

func TestActionRecord_ConflictingArtifactData(t *testing.T) {
	a := domain.NewArtifact("obj/a.o")

	_, err := domain.NewActionRecord(
		map[domain.Artifact]domain.FileFingerprint{a: {Exists: true, Size: 1}},
		map[domain.Artifact]domain.OverrideFingerprint{a: {Digest: "ff"}},
	)
	if !errors.Is(err, domain.ErrConflictingArtifactData) {
		t.Fatalf("expected ErrConflictingArtifactData, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if artifact, ok := zErr.Metadata()["artifact"].(string); !ok || artifact != "obj/a.o" {
		t.Errorf("expected metadata artifact=obj/a.o, got %v", zErr.Metadata()["artifact"])
	}
}

func TestActionRecord_UnknownArtifact(t *testing.T) {
	rec, err := domain.NewActionRecord(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := rec.FingerprintOf(domain.NewArtifact("nope")); !errors.Is(err, domain.ErrUnknownArtifact) {
		t.Fatalf("expected ErrUnknownArtifact, got %v", err)
	}

	if _, ok := rec.OverrideFingerprintOf(domain.NewArtifact("nope")); ok {
		t.Error("expected no override entry for unknown artifact")
	}
}

func TestActionRecord_Immutable(t *testing.T) {
	a := domain.NewArtifact("out")
	source := map[domain.Artifact]domain.FileFingerprint{a: {Exists: true, Size: 1}}

	rec, err := domain.NewActionRecord(source, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutating the caller's map or the returned copy must not leak into
	// the record.
	source[a] = domain.FileFingerprint{Exists: true, Size: 99}
	all := rec.AllPlainFingerprints()
	all[a] = domain.FileFingerprint{Exists: true, Size: 1000}

	got, err := rec.FingerprintOf(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Size != 1 {
		t.Errorf("expected recorded size 1, got %d", got.Size)
	}
}
