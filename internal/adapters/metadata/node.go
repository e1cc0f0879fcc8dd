package metadata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crates/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the metadata store node.
	StoreNodeID graft.ID = "adapter.metadata_store"
	// HasherNodeID is the unique identifier for the digest hasher node.
	HasherNodeID graft.ID = "adapter.hasher"
)

func init() {
	graft.Register(graft.Node[ports.MetadataStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
