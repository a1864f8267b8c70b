// Package checker implements the filesystem-drift detector: it compares
// the fingerprints recorded for every memoized action against the current
// on-disk state of its outputs.
package checker

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Drift describes one artifact whose on-disk state no longer matches the
// fingerprint recorded for it.
type Drift struct {
	ActionID string
	Artifact domain.Artifact
	Recorded domain.FileFingerprint
	Actual   domain.FileFingerprint
}

// Checker scans action entries for drift. It only consults the plain
// fingerprint map of each record; override entries cannot be re-derived
// from a stat and are skipped by design.
type Checker struct {
	fingerprinter ports.Fingerprinter
	logger        ports.Logger
	parallelism   int
}

// New creates a Checker. Parallelism bounds the number of entries checked
// concurrently; values below one are treated as one.
func New(fingerprinter ports.Fingerprinter, logger ports.Logger, parallelism int) *Checker {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Checker{
		fingerprinter: fingerprinter,
		logger:        logger,
		parallelism:   parallelism,
	}
}

// Check fingerprints every plain output of every entry under root and
// returns the drifts found. Progress is reported per action through the
// recorder; actions without a progress message stay invisible there.
func (c *Checker) Check(
	ctx context.Context,
	root string,
	entries []domain.ActionEntry,
	recorder ports.Recorder,
) ([]Drift, error) {
	var (
		mu     sync.Mutex
		drifts []Drift
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)

	for _, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			found, err := c.checkEntry(ctx, root, &entry, recorder)
			if err != nil {
				return err
			}

			if len(found) > 0 {
				mu.Lock()
				drifts = append(drifts, found...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortDrifts(drifts)
	return drifts, nil
}

// checkEntry compares every plain fingerprint of one entry against the
// filesystem.
func (c *Checker) checkEntry(
	ctx context.Context,
	root string,
	entry *domain.ActionEntry,
	recorder ports.Recorder,
) ([]Drift, error) {
	vertex := recorder.Record(ctx, entry.Key(), &entry.Action)

	var found []Drift
	for artifact, recorded := range entry.Record.AllPlainFingerprints() {
		actual, err := c.fingerprinter.Fingerprint(filepath.Join(root, artifact.Path()))
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to fingerprint artifact"), "artifact", artifact.Path())
			vertex.Complete(err)
			return nil, err
		}

		if !recorded.Unchanged(actual) {
			found = append(found, Drift{
				ActionID: entry.Action.ID(),
				Artifact: artifact,
				Recorded: recorded,
				Actual:   actual,
			})
		}
	}

	if len(found) == 0 {
		vertex.Cached()
		vertex.Complete(nil)
		return nil, nil
	}

	err := zerr.With(zerr.Wrap(domain.ErrDriftDetected, "recorded fingerprints are stale"), "action", entry.Action.Mnemonic)
	vertex.Complete(err)
	c.logger.Info("drift detected for action " + entry.Action.Mnemonic)
	return found, nil
}

// sortDrifts orders drifts by artifact path so reports are deterministic
// regardless of check scheduling.
func sortDrifts(drifts []Drift) {
	slices.SortFunc(drifts, func(a, b Drift) int {
		return strings.Compare(a.Artifact.Path(), b.Artifact.Path())
	})
}
