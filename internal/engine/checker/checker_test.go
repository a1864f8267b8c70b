package checker_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.trai.ch/memo/internal/engine/checker"
	"go.uber.org/mock/gomock"
)

type checkerTestMocks struct {
	fingerprinter *mocks.MockFingerprinter
	logger        *mocks.MockLogger
	recorder      *mocks.MockRecorder
}

func setupCheckerTest(t *testing.T) (*checker.Checker, checkerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := checkerTestMocks{
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		logger:        mocks.NewMockLogger(ctrl),
		recorder:      mocks.NewMockRecorder(ctrl),
	}

	// Vertex calls are incidental to most tests.
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	m.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(vertex).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	return checker.New(m.fingerprinter, m.logger, 2), m
}

func entryWithOutput(t *testing.T, path string, fp domain.FileFingerprint) domain.ActionEntry {
	t.Helper()
	rec, err := domain.NewActionRecord(
		map[domain.Artifact]domain.FileFingerprint{domain.NewArtifact(path): fp},
		nil,
	)
	require.NoError(t, err)

	return domain.ActionEntry{
		Action: domain.Action{
			Mnemonic: "GenRule",
			Progress: "Generating " + path,
			Command:  []string{"gen", path},
			Outputs:  []domain.Artifact{domain.NewArtifact(path)},
		},
		Record: rec,
	}
}

func TestChecker_Clean(t *testing.T) {
	c, m := setupCheckerTest(t)

	fp := domain.FileFingerprint{Exists: true, Size: 10, MTimeNanos: 5}
	entry := entryWithOutput(t, "out/a", fp)

	m.fingerprinter.EXPECT().
		Fingerprint(filepath.Join("/root", "out/a")).
		Return(fp, nil)

	drifts, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entry}, m.recorder)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestChecker_ReportsSizeDrift(t *testing.T) {
	c, m := setupCheckerTest(t)

	recorded := domain.FileFingerprint{Exists: true, Size: 10, MTimeNanos: 5}
	entry := entryWithOutput(t, "out/a", recorded)

	actual := domain.FileFingerprint{Exists: true, Size: 11, MTimeNanos: 5}
	m.fingerprinter.EXPECT().Fingerprint(gomock.Any()).Return(actual, nil)

	drifts, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entry}, m.recorder)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, "out/a", drifts[0].Artifact.Path())
	assert.Equal(t, recorded, drifts[0].Recorded)
	assert.Equal(t, actual, drifts[0].Actual)
}

func TestChecker_ReportsDeletedOutput(t *testing.T) {
	c, m := setupCheckerTest(t)

	entry := entryWithOutput(t, "out/a", domain.FileFingerprint{Exists: true, Size: 10})
	m.fingerprinter.EXPECT().Fingerprint(gomock.Any()).Return(domain.AbsentFingerprint(), nil)

	drifts, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entry}, m.recorder)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.False(t, drifts[0].Actual.Exists)
}

func TestChecker_SkipsOverrides(t *testing.T) {
	c, m := setupCheckerTest(t)

	rec, err := domain.NewActionRecord(
		nil,
		map[domain.Artifact]domain.OverrideFingerprint{
			domain.NewArtifact("out/remote"): {Digest: "abc"},
		},
	)
	require.NoError(t, err)

	entry := domain.ActionEntry{
		Action: domain.Action{Mnemonic: "RemoteFetch", Progress: "Fetching"},
		Record: rec,
	}

	// No Fingerprint expectation: overridden artifacts must not be stated.
	drifts, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entry}, m.recorder)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestChecker_PropagatesFingerprintError(t *testing.T) {
	c, m := setupCheckerTest(t)

	entry := entryWithOutput(t, "out/a", domain.FileFingerprint{Exists: true, Size: 10})

	statErr := errors.New("permission denied")
	m.fingerprinter.EXPECT().Fingerprint(gomock.Any()).Return(domain.FileFingerprint{}, statErr)

	_, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entry}, m.recorder)
	require.Error(t, err)
	assert.ErrorIs(t, err, statErr)
}

func TestChecker_SortsDriftsByArtifact(t *testing.T) {
	c, m := setupCheckerTest(t)

	entryB := entryWithOutput(t, "out/b", domain.FileFingerprint{Exists: true, Size: 1})
	entryA := entryWithOutput(t, "out/a", domain.FileFingerprint{Exists: true, Size: 1})

	m.fingerprinter.EXPECT().Fingerprint(gomock.Any()).Return(domain.AbsentFingerprint(), nil).Times(2)

	drifts, err := c.Check(context.Background(), "/root", []domain.ActionEntry{entryB, entryA}, m.recorder)
	require.NoError(t, err)
	require.Len(t, drifts, 2)
	assert.Equal(t, "out/a", drifts[0].Artifact.Path())
	assert.Equal(t, "out/b", drifts[1].Artifact.Path())
}
