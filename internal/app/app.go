// Package app implements the application layer for memo.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/memo/internal/engine/checker"
	"go.trai.ch/memo/internal/engine/memo"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	cfg           *domain.Config
	store         ports.RecordStore
	fingerprinter ports.Fingerprinter
	checker       *checker.Checker
	recorder      ports.Recorder
	logger        ports.Logger
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	store ports.RecordStore,
	fingerprinter ports.Fingerprinter,
	chk *checker.Checker,
	recorder ports.Recorder,
	logger ports.Logger,
) *App {
	return &App{
		cfg:           cfg,
		store:         store,
		fingerprinter: fingerprinter,
		checker:       chk,
		recorder:      recorder,
		logger:        logger,
	}
}

// Record fingerprints the outputs of every manifest action and persists
// one entry per distinct memoization key. Duplicate keys publish once;
// later occurrences observe the already-published record and skip the
// store write.
func (a *App) Record(ctx context.Context, actions []domain.Action) error {
	table := memo.NewTable()
	recordedAt := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.cfg.Parallelism, 1))

	for _, action := range actions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.recordOne(ctx, &action, table, recordedAt)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("recorded %d actions", table.Len()))
	return nil
}

// recordOne snapshots one action's outputs into the table and the store.
func (a *App) recordOne(
	ctx context.Context,
	action *domain.Action,
	table *memo.Table,
	recordedAt time.Time,
) error {
	key := domain.KeyFor(action)
	vertex := a.recorder.Record(ctx, key, action)

	fingerprints := make(map[domain.Artifact]domain.FileFingerprint, len(action.Outputs))
	for _, out := range action.Outputs {
		fp, err := a.fingerprinter.Fingerprint(filepath.Join(a.cfg.Root, out.Path()))
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to fingerprint output"), "artifact", out.Path())
			vertex.Complete(err)
			return err
		}
		fingerprints[out] = fp
	}

	record, err := domain.NewActionRecord(fingerprints, nil)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	if _, loaded := table.Publish(key, record); loaded {
		vertex.Cached()
		vertex.Complete(nil)
		return nil
	}

	entry := domain.ActionEntry{
		Action:     *action,
		Record:     record,
		RecordedAt: recordedAt,
	}
	if err := a.store.Put(a.cfg.Root, entry); err != nil {
		vertex.Complete(err)
		return err
	}

	vertex.Complete(nil)
	return nil
}

// Check scans every stored entry for drift between its recorded
// fingerprints and the filesystem.
func (a *App) Check(ctx context.Context) ([]checker.Drift, error) {
	entries, err := a.store.List(a.cfg.Root)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("checking %d actions", len(entries)))
	return a.checker.Check(ctx, a.cfg.Root, entries, a.recorder)
}

// Show returns the stored entry whose action ID matches actionID, which
// may be a unique prefix. A full-length ID is looked up directly; only
// prefixes pay for a store scan.
func (a *App) Show(actionID string) (*domain.ActionEntry, error) {
	if len(actionID) == domain.ActionIDLength {
		entry, err := a.store.Get(a.cfg.Root, domain.Key{Kind: domain.KindActionResult, ActionID: actionID})
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrRecordNotFound, "resolving action ID"), "action", actionID)
		}
		return entry, nil
	}

	entries, err := a.store.List(a.cfg.Root)
	if err != nil {
		return nil, err
	}

	var matches []*domain.ActionEntry
	for i := range entries {
		if strings.HasPrefix(entries[i].Action.ID(), actionID) {
			matches = append(matches, &entries[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, zerr.With(zerr.Wrap(domain.ErrRecordNotFound, "resolving action ID"), "action", actionID)
	case 1:
		return matches[0], nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrAmbiguousActionID, "resolving action ID"), "action", actionID)
	}
}

// Close releases the progress recording session.
func (a *App) Close() error {
	return a.recorder.Close()
}
