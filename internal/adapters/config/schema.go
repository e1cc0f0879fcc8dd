package config

// Cratesfile is the on-disk shape of crates.yaml.
type Cratesfile struct {
	Version        string              `yaml:"version"`
	Manifest       string              `yaml:"manifest"`
	RepositoryName string              `yaml:"repository_name"`
	Cargo          string              `yaml:"cargo"`
	Rustc          string              `yaml:"rustc"`
	QueryTimeout   string              `yaml:"query_timeout"`
	Platforms      []string            `yaml:"supported_platform_triples"`
	PlatformLabels map[string][]string `yaml:"platform_labels"`
}

// SupportedVersion is the only schema version understood by the loader.
const SupportedVersion = "1"
