// Package config loads crates.yaml.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover walks up from cwd and returns the nearest crates.yaml.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "searching parent directories"), "cwd", cwd)
}

// Load reads the configuration file at path.
func (l *Loader) Load(path string) (*domain.Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "resolving config path")
	}

	var file Cratesfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := l.resolve(filepath.Dir(path), &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) resolve(root string, file *Cratesfile) (*domain.Config, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unsupported config version"), "version", file.Version)
	}

	manifest := resolvePath(root, file.Manifest, domain.ManifestFileName)
	if info, err := os.Stat(manifest); err != nil || info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "checking manifest"), "manifest", manifest)
	}

	timeout, err := parseTimeout(file.QueryTimeout)
	if err != nil {
		return nil, err
	}

	platforms, err := l.platforms(file.Platforms)
	if err != nil {
		return nil, err
	}

	labels := make(map[domain.Platform][]string, len(file.PlatformLabels))
	for triple, values := range file.PlatformLabels {
		p := domain.Platform(triple)
		if !slices.Contains(platforms, p) {
			l.Logger.Warn("platform_labels entry " + triple + " does not name a supported platform triple")
			continue
		}
		labels[p] = uniqueStrings(values)
	}

	return &domain.Config{
		Root:           root,
		ManifestPath:   manifest,
		RepositoryName: valueOr(file.RepositoryName, domain.DefaultRepositoryName),
		Cargo:          file.Cargo,
		Rustc:          file.Rustc,
		QueryTimeout:   timeout,
		Platforms:      platforms,
		PlatformLabels: labels,
	}, nil
}

func (l *Loader) platforms(triples []string) ([]domain.Platform, error) {
	platforms := make([]domain.Platform, 0, len(triples))
	for _, t := range triples {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		platforms = append(platforms, domain.Platform(t))
	}

	unique := domain.UniquePlatforms(platforms)
	if len(unique) != len(platforms) {
		l.Logger.Warn("duplicate entries in supported_platform_triples were ignored")
	}
	if len(unique) == 0 {
		return nil, zerr.Wrap(domain.ErrNoPlatforms, "supported_platform_triples is empty")
	}
	return unique, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return domain.DefaultQueryTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidTimeout, err), "parsing query_timeout"), "query_timeout", raw)
	}
	if d <= 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, "query_timeout must be positive"), "query_timeout", raw)
	}
	return d, nil
}

func resolvePath(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(root, configured))
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func uniqueStrings(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// readAndUnmarshalYAML decodes configPath into target, rejecting unknown keys.
// An empty file leaves target untouched.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "reading config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "decoding config")
	}

	return nil
}
