package progress

import (
	"context"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/depcache/internal/core/ports"
)

const (
	// NodeID is the Graft node of the progress port.
	NodeID graft.ID = "adapter.progress"
	// RecorderNodeID exposes the concrete recorder so the CLI can choose where progress goes.
	RecorderNodeID graft.ID = "adapter.progress.recorder"
)

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        RecorderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Recorder, error) {
			return New(io.Discard), nil
		},
	})

	graft.Register(graft.Node[ports.Progress]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.Progress, error) {
			return graft.Dep[*Recorder](ctx)
		},
	})
}
