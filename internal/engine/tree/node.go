package tree

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crates/internal/adapters/cargo"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crates/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crates/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crates/internal/core/ports"
)

// NodeID is the unique identifier for the tree resolver Graft node.
const NodeID graft.ID = "engine.tree"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cargo.QuerierNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			querier, err := graft.Dep[ports.TreeQuerier](ctx)
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

			return NewResolver(querier, log, tel), nil
		},
	})
}
