package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.config.loader"
	// NodeID is the unique identifier for the loaded config Graft node.
	NodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return &FileConfigLoader{Filename: "memo.yaml"}, nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(".")
		},
	})
}
