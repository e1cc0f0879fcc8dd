package ports

import "go.trai.ch/crates/internal/core/domain"

// Hasher computes the digest that decides whether a repin is needed.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeDigest hashes the configuration, the cargo version and the lockfile contents.
	ComputeDigest(cfg *domain.Config, cargoVersion string) (string, error)
}
