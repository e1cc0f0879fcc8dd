package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crates/internal/adapters/cargo"     //nolint:depguard // Wired in app layer
	"go.trai.ch/crates/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crates/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crates/internal/adapters/metadata"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crates/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/crates/internal/engine/tree"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cargo.NodeID,
			tree.NodeID,
			metadata.StoreNodeID,
			metadata.HasherNodeID,
			logger.NodeID,
			telemetry.FeedNodeID,
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
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	bin, err := graft.Dep[*cargo.Binary](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*tree.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.MetadataStore](ctx)
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

	feed, err := graft.Dep[*telemetry.Feed](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, bin, resolver, store, hasher, log).WithProgress(feed), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tel), nil
}
