package sqlstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depcache/internal/adapters/settings"
	"go.trai.ch/depcache/internal/core/ports"
)

// NodeID is the Graft node of the graph store.
const NodeID graft.ID = "adapter.sqlstore"

func init() {
	graft.Register(graft.Node[ports.GraphStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.GraphStore, error) {
			s, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(s.DSN), nil
		},
	})
}
