// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crates/internal/adapters/cargo"
	_ "go.trai.ch/crates/internal/adapters/config"
	_ "go.trai.ch/crates/internal/adapters/logger"
	_ "go.trai.ch/crates/internal/adapters/metadata"
	_ "go.trai.ch/crates/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/crates/internal/app"
	_ "go.trai.ch/crates/internal/engine/tree"
)
