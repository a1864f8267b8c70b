package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.trai.ch/memo/internal/engine/checker"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	store         *mocks.MockRecordStore
	fingerprinter *mocks.MockFingerprinter
	recorder      *mocks.MockRecorder
	vertex        *mocks.MockVertex
	app           *app.App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		store:         mocks.NewMockRecordStore(ctrl),
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		recorder:      mocks.NewMockRecorder(ctrl),
		vertex:        mocks.NewMockVertex(ctrl),
	}
	f.vertex.EXPECT().Stdout().AnyTimes()
	f.vertex.EXPECT().Cached().AnyTimes()
	f.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	cfg := &domain.Config{Root: t.TempDir(), StorePath: domain.DefaultStorePath(), Parallelism: 1}
	chk := checker.New(f.fingerprinter, logger, cfg.Parallelism)
	f.app = app.New(cfg, f.store, f.fingerprinter, chk, f.recorder, logger)
	return f
}

func linkAction(name string) domain.Action {
	return domain.Action{
		Mnemonic: "CppLink",
		Progress: "Linking bin/" + name,
		Command:  []string{"cc", "-o", "bin/" + name},
		Outputs:  []domain.Artifact{domain.NewArtifact("bin/" + name)},
	}
}

func TestRecord_FingerprintsAndStores(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")

	f.recorder.EXPECT().Record(gomock.Any(), domain.KeyFor(&action), gomock.Any()).Return(f.vertex)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any()).
		Return(domain.FileFingerprint{Exists: true, Size: 42}, nil)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, entry domain.ActionEntry) error {
			assert.Equal(t, action.ID(), entry.Action.ID())
			fp, err := entry.Record.FingerprintOf(domain.NewArtifact("bin/app"))
			require.NoError(t, err)
			assert.Equal(t, int64(42), fp.Size)
			return nil
		})

	require.NoError(t, f.app.Record(context.Background(), []domain.Action{action}))
}

func TestRecord_DuplicateKeysStoreOnce(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")

	f.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.vertex).Times(2)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any()).
		Return(domain.FileFingerprint{Exists: true, Size: 42}, nil).Times(2)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	err := f.app.Record(context.Background(), []domain.Action{action, action})
	require.NoError(t, err)
}

func TestRecord_FingerprintFailureAborts(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")

	f.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.vertex)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any()).
		Return(domain.FileFingerprint{}, domain.ErrPathStatFailed)

	err := f.app.Record(context.Background(), []domain.Action{action})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPathStatFailed)
}

func TestShow_MatchesUniquePrefix(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")
	record, err := domain.NewActionRecord(nil, nil)
	require.NoError(t, err)
	entries := []domain.ActionEntry{{Action: action, Record: record}}

	f.store.EXPECT().List(gomock.Any()).Return(entries, nil)

	entry, err := f.app.Show(action.ID()[:10])
	require.NoError(t, err)
	assert.Equal(t, action.ID(), entry.Action.ID())
}

func TestShow_FullIDLooksUpDirectly(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")
	record, err := domain.NewActionRecord(nil, nil)
	require.NoError(t, err)
	entry := domain.ActionEntry{Action: action, Record: record}

	// A full-length ID must hit the store's keyed lookup, not a scan.
	f.store.EXPECT().Get(gomock.Any(), domain.KeyFor(&action)).Return(&entry, nil)

	got, err := f.app.Show(action.ID())
	require.NoError(t, err)
	assert.Equal(t, action.ID(), got.Action.ID())
}

func TestShow_FullIDMiss(t *testing.T) {
	f := newAppFixture(t)
	action := linkAction("app")

	f.store.EXPECT().Get(gomock.Any(), domain.KeyFor(&action)).Return(nil, nil)

	_, err := f.app.Show(action.ID())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestShow_AmbiguousPrefix(t *testing.T) {
	f := newAppFixture(t)
	record, err := domain.NewActionRecord(nil, nil)
	require.NoError(t, err)
	entries := []domain.ActionEntry{
		{Action: linkAction("app"), Record: record},
		{Action: linkAction("lib"), Record: record},
	}

	f.store.EXPECT().List(gomock.Any()).Return(entries, nil)

	_, err = f.app.Show("")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousActionID)
}

func TestCheck_PropagatesStoreError(t *testing.T) {
	f := newAppFixture(t)

	f.store.EXPECT().List(gomock.Any()).Return(nil, domain.ErrStoreReadFailed)

	_, err := f.app.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreReadFailed)
}
