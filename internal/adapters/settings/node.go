package settings

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the Graft node of the process settings.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			return LoadSettings(".env"), nil
		},
	})
}
