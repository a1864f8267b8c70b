package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/memo/internal/engine/checker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the wired pieces the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *domain.Config
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			fs.NodeID,
			progress.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RecordStore](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	chk := checker.New(fingerprinter, log, cfg.Parallelism)
	return New(cfg, store, fingerprinter, chk, recorder, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
		Config: cfg,
	}, nil
}
