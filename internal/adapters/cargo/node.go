package cargo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crates/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/crates/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the cargo binary node.
	NodeID graft.ID = "adapter.cargo"
	// QuerierNodeID is the unique identifier for the tree querier node.
	QuerierNodeID graft.ID = "adapter.cargo.querier"
)

func init() {
	graft.Register(graft.Node[*Binary]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Binary, error) {
			return NewBinaryFromEnv(), nil
		},
	})

	graft.Register(graft.Node[ports.TreeQuerier]{
		ID:        QuerierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TreeQuerier, error) {
			bin, err := graft.Dep[*Binary](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTreeQuerier(bin, log), nil
		},
	})
}
