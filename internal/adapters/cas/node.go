package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/adapters/config"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
)

// NodeID is the unique identifier for the record store Graft node.
const NodeID graft.ID = "adapter.cas.store"

func init() {
	graft.Register(graft.Node[ports.RecordStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.RecordStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.StorePath), nil
		},
	})
}
