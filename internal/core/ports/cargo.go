package ports

import (
	"context"

	"go.trai.ch/crates/internal/core/domain"
)

//go:generate mockgen -source=cargo.go -destination=mocks/mock_cargo.go -package=mocks

// TreeQuerier runs the dependency tree query for a single platform.
type TreeQuerier interface {
	// QueryTree returns the raw `cargo tree` output for manifestPath filtered to platform.
	// A non-zero exit is reported as domain.ErrTreeQueryFailed.
	QueryTree(ctx context.Context, manifestPath string, platform domain.Platform) ([]byte, error)
}

// Toolchain selects the cargo and rustc binaries and reports facts about them.
type Toolchain interface {
	// Configure applies the binaries named by cfg. Environment overrides win.
	Configure(cfg *domain.Config)
	// FullVersion returns the trimmed output of `cargo version`. It is computed once per process.
	FullVersion(ctx context.Context) (string, error)
}
