package ports

import "go.trai.ch/crates/internal/core/domain"

// MetadataStore persists the resolved tree metadata document.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetadataStore interface {
	// Load reads the document at path.
	// Returns nil, nil if not found.
	Load(path string) (*domain.Metadata, error)

	// Save atomically replaces the document at path.
	Save(path string, md *domain.Metadata) error
}
