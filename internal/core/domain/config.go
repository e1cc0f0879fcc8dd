package domain

import (
	"slices"
	"time"
)

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory holding crates.yaml. Relative paths resolve against it.
	Root string

	// ManifestPath is the absolute path of the workspace Cargo.toml.
	ManifestPath string

	// RepositoryName is the external repository name used in dependency labels.
	RepositoryName string

	// Cargo and Rustc are the toolchain binaries.
	Cargo string
	Rustc string

	// QueryTimeout bounds each per-platform cargo tree invocation.
	QueryTimeout time.Duration

	// Platforms are the target triples to resolve, sorted and unique.
	Platforms []Platform

	// PlatformLabels maps a triple to the configuration labels it selects on.
	PlatformLabels map[Platform][]string
}

// LabelsFor returns the configured labels for a platform, falling back to the
// rules_rust platform package.
func (c *Config) LabelsFor(p Platform) []string {
	if labels, ok := c.PlatformLabels[p]; ok && len(labels) > 0 {
		return slices.Clone(labels)
	}
	return []string{DefaultPlatformLabelPrefix + p.String()}
}

// LabelMapping returns the full internal-key to label mapping for every configured platform.
func (c *Config) LabelMapping() map[string][]string {
	out := make(map[string][]string, len(c.Platforms))
	for _, p := range c.Platforms {
		out[p.String()] = c.LabelsFor(p)
	}
	return out
}

// MetadataPath returns where the metadata document lives for this configuration.
func (c *Config) MetadataPath() string {
	return DefaultMetadataPath(c.Root)
}

// LockfilePath returns the Cargo.lock next to the manifest.
func (c *Config) LockfilePath() string {
	return LockfilePath(c.ManifestPath)
}
