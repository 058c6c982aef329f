package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depcache/internal/core/ports"
)

const (
	// NodeID is the Graft node of the metrics port.
	NodeID graft.ID = "adapter.metrics"
	// RecorderNodeID exposes the concrete recorder for serving /metrics.
	RecorderNodeID graft.ID = "adapter.metrics.recorder"
)

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        RecorderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Recorder, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.Metrics, error) {
			return graft.Dep[*Recorder](ctx)
		},
	})
}
