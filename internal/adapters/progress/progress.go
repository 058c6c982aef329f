// Package progress reports per-output progress through progrock.
package progress

import (
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/depcache/internal/core/ports"
)

var _ ports.Progress = (*Recorder)(nil)

// Recorder implements ports.Progress with one progrock vertex per item.
type Recorder struct {
	printer *Printer
	rec     *progrock.Recorder
}

// New creates a Recorder that prints finished items to w.
func New(w io.Writer) *Recorder {
	printer := NewPrinter(w)
	return &Recorder{
		printer: printer,
		rec:     progrock.NewRecorder(printer),
	}
}

// SetOutput redirects the printed progress. io.Discard silences it.
func (r *Recorder) SetOutput(w io.Writer) {
	r.printer.SetOutput(w)
}

// Start opens a vertex named after the item. The digest of the name identifies it,
// so starting the same name twice updates one vertex.
func (r *Recorder) Start(name string) ports.ProgressItem {
	return &Item{vertex: r.rec.Vertex(digest.FromString(name), name)}
}

// Close closes the printer.
func (r *Recorder) Close() error {
	return r.printer.Close()
}

// Item wraps *progrock.VertexRecorder.
type Item struct {
	vertex *progrock.VertexRecorder
}

// Log returns the vertex's stdout stream.
func (i *Item) Log() io.Writer {
	return i.vertex.Stdout()
}

// Cached marks the vertex as a cache hit.
func (i *Item) Cached() {
	i.vertex.Cached()
}

// Done completes the vertex.
func (i *Item) Done(err error) {
	i.vertex.Done(err)
}
