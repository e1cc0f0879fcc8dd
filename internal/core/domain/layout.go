package domain

import (
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "crates.yaml"

	// MetadataFileName is the name of the resolved tree metadata document.
	MetadataFileName = "metadata.json"

	// LockfileName is the name of the Cargo lockfile next to the manifest.
	LockfileName = "Cargo.lock"

	// ManifestFileName is the default Cargo manifest name.
	ManifestFileName = "Cargo.toml"

	// DefaultRepositoryName is the repository used in dependency labels when none is configured.
	DefaultRepositoryName = "crates"

	// DefaultPlatformLabelPrefix is prepended to a triple when no explicit label mapping exists.
	DefaultPlatformLabelPrefix = "@rules_rust//rust/platform:"

	// DefaultQueryTimeout bounds a single per-platform cargo tree invocation.
	DefaultQueryTimeout = 10 * time.Minute

	// TreeFormat is the `cargo tree --format` argument the tree parser depends on.
	TreeFormat = "|{p}|{f}|"

	// DebugEnvVar enables debug logging when set to a non-empty value.
	DebugEnvVar = "CRATES_DEBUG"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultMetadataPath returns the metadata document location for a config directory.
func DefaultMetadataPath(root string) string {
	return filepath.Join(root, MetadataFileName)
}

// LockfilePath returns the Cargo.lock that sits next to the given manifest.
func LockfilePath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), LockfileName)
}
