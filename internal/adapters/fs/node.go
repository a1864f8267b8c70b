package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/adapters/config"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
)

// NodeID is the unique identifier for the fingerprinter Graft node.
const NodeID graft.ID = "adapter.fs.fingerprinter"

func init() {
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewFingerprinter(cfg.Digest), nil
		},
	})
}
