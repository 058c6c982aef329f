package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depcache/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/metrics"  //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/settings" //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/sqlstore" //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/depcache/internal/engine/depgraph"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App      *App
	Logger   *logger.Logger
	Settings *settings.Settings
	Metrics  *metrics.Recorder
	Progress *progress.Recorder
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			settings.NodeID,
			depgraph.NodeID,
			sqlstore.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			progress.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.ConcreteNodeID,
			settings.NodeID,
			metrics.RecorderNodeID,
			progress.RecorderNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}
	graph, err := graft.Dep[*depgraph.Engine](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.GraphStore](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	prog, err := graft.Dep[ports.Progress](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, graph, store, hasher, log, prog, w, cfg), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[*metrics.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	prog, err := graft.Dep[*progress.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:      a,
		Logger:   log,
		Settings: cfg,
		Metrics:  recorder,
		Progress: prog,
	}, nil
}
