// Package progress provides the Progrock implementation of the progress
// recorder adapter.
package progress

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
)

var _ ports.Recorder = (*Recorder)(nil)

// Recorder implements ports.Recorder on a progrock tape. Actions that are
// not user visible never reach the tape; they get a no-op vertex instead.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex for the given action, named by its progress
// message. Keys that fail the user-visibility filter get a no-op vertex.
func (r *Recorder) Record(_ context.Context, key domain.Key, action *domain.Action) ports.Vertex {
	if !domain.UserVisible(key, action) {
		return noopVertex{}
	}

	d := digest.FromString(key.String())
	return &Vertex{vertex: r.rec.Vertex(d, action.Progress)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer for output attributed to this vertex.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Cached marks the vertex as verified-unchanged.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Complete marks the vertex as finished.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// noopVertex is handed out for actions that must not appear in progress
// output. It swallows everything.
type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Cached()           {}
func (noopVertex) Complete(error)    {}
