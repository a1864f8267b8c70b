package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/cmd/memo/commands"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.trai.ch/memo/internal/engine/checker"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	store         *mocks.MockRecordStore
	fingerprinter *mocks.MockFingerprinter
	recorder      *mocks.MockRecorder
	logger        *mocks.MockLogger
	cli           *commands.CLI
	out           *bytes.Buffer
}

func newTestCLI(t *testing.T) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := &testDeps{
		store:         mocks.NewMockRecordStore(ctrl),
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		recorder:      mocks.NewMockRecorder(ctrl),
		logger:        mocks.NewMockLogger(ctrl),
		out:           &bytes.Buffer{},
	}
	d.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	cfg := &domain.Config{Root: t.TempDir(), StorePath: domain.DefaultStorePath(), Parallelism: 1}
	chk := checker.New(d.fingerprinter, d.logger, cfg.Parallelism)
	a := app.New(cfg, d.store, d.fingerprinter, chk, d.recorder, d.logger)

	d.cli = commands.New(a)
	d.cli.SetOutput(d.out, d.out)
	return d
}

func anyTimesVertex(ctrl *gomock.Controller) *mocks.MockVertex {
	v := mocks.NewMockVertex(ctrl)
	v.EXPECT().Stdout().AnyTimes()
	v.EXPECT().Cached().AnyTimes()
	v.EXPECT().Complete(gomock.Any()).AnyTimes()
	return v
}

func linkEntry(t *testing.T, size int64) domain.ActionEntry {
	t.Helper()
	out := domain.NewArtifact("bin/app")
	record, err := domain.NewActionRecord(
		map[domain.Artifact]domain.FileFingerprint{
			out: {Exists: true, Size: size, MTimeNanos: 100},
		},
		nil,
	)
	require.NoError(t, err)
	return domain.ActionEntry{
		Action: domain.Action{
			Mnemonic: "CppLink",
			Progress: "Linking bin/app",
			Command:  []string{"cc", "-o", "bin/app"},
			Outputs:  []domain.Artifact{out},
		},
		Record: record,
	}
}

func TestCheck_CleanStore(t *testing.T) {
	d := newTestCLI(t)
	d.store.EXPECT().List(gomock.Any()).Return(nil, nil)

	d.cli.SetArgs([]string{"check"})
	err := d.cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, d.out.String(), "all recorded outputs match")
}

func TestCheck_ReportsDrift(t *testing.T) {
	d := newTestCLI(t)
	ctrl := gomock.NewController(t)

	entry := linkEntry(t, 10)
	d.store.EXPECT().List(gomock.Any()).Return([]domain.ActionEntry{entry}, nil)
	d.fingerprinter.EXPECT().Fingerprint(gomock.Any()).
		Return(domain.FileFingerprint{Exists: true, Size: 99, MTimeNanos: 100}, nil)
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(anyTimesVertex(ctrl))

	d.cli.SetArgs([]string{"check"})
	err := d.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDriftDetected)
	assert.Contains(t, d.out.String(), "drift: bin/app")
}

func TestShow_RecordNotFound(t *testing.T) {
	d := newTestCLI(t)
	d.store.EXPECT().List(gomock.Any()).Return(nil, nil)

	d.cli.SetArgs([]string{"show", "deadbeef"})
	err := d.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestShow_PrintsFingerprints(t *testing.T) {
	d := newTestCLI(t)

	entry := linkEntry(t, 10)
	d.store.EXPECT().List(gomock.Any()).Return([]domain.ActionEntry{entry}, nil)

	d.cli.SetArgs([]string{"show", entry.Action.ID()[:8]})
	err := d.cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, d.out.String(), "CppLink")
	assert.Contains(t, d.out.String(), "bin/app")
	assert.Contains(t, d.out.String(), "size=10")
}

func TestRecord_MissingManifest(t *testing.T) {
	d := newTestCLI(t)

	d.cli.SetArgs([]string{"record", "--manifest", "does-not-exist.yaml"})
	err := d.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestVersion(t *testing.T) {
	d := newTestCLI(t)

	d.cli.SetArgs([]string{"version"})
	err := d.cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, d.out.String(), "memo version")
}
