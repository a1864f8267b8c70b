package ports

import (
	"context"
	"io"

	"go.trai.ch/memo/internal/core/domain"
)

// Recorder renders per-action progress. Implementations decide how a
// vertex is displayed; callers hand over the key and action so the
// recorder can apply the user-visibility filter.
//
//go:generate go run go.uber.org/mock/mockgen -source=recorder.go -destination=mocks/mock_recorder.go -package=mocks
type Recorder interface {
	// Record starts a vertex for the given action. Keys that are not user
	// visible get a no-op vertex; the caller does not need to care.
	Record(ctx context.Context, key domain.Key, action *domain.Action) Vertex

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one action's progress entry.
type Vertex interface {
	// Stdout returns a writer for output attributed to this vertex.
	Stdout() io.Writer
	// Cached marks the vertex as verified-unchanged.
	Cached()
	// Complete marks the vertex as finished, with err non-nil on failure.
	Complete(err error)
}
