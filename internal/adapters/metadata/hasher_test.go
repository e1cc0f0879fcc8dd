package metadata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/adapters/metadata"
	"go.trai.ch/crates/internal/core/domain"
)

func newProject(t *testing.T, lockfile string) *domain.Config {
	t.Helper()
	root := t.TempDir()
	manifest := filepath.Join(root, domain.ManifestFileName)
	require.NoError(t, os.WriteFile(manifest, []byte("[package]\nname = \"demo\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.LockfileName), []byte(lockfile), 0o600))

	return &domain.Config{
		Root:           root,
		ManifestPath:   manifest,
		RepositoryName: domain.DefaultRepositoryName,
		Platforms:      []domain.Platform{"aarch64-apple-darwin", "x86_64-unknown-linux-gnu"},
		PlatformLabels: map[domain.Platform][]string{},
	}
}

func TestHasher_Deterministic(t *testing.T) {
	cfg := newProject(t, "version = 3\n")
	h := metadata.NewHasher()

	first, err := h.ComputeDigest(cfg, "cargo 1.74.0")
	require.NoError(t, err)
	second, err := h.ComputeDigest(cfg, "cargo 1.74.0")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
}

func TestHasher_IndependentOfRootLocation(t *testing.T) {
	h := metadata.NewHasher()

	a, err := h.ComputeDigest(newProject(t, "version = 3\n"), "cargo 1.74.0")
	require.NoError(t, err)
	b, err := h.ComputeDigest(newProject(t, "version = 3\n"), "cargo 1.74.0")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHasher_Sensitivity(t *testing.T) {
	h := metadata.NewHasher()
	base := newProject(t, "version = 3\n")
	baseline, err := h.ComputeDigest(base, "cargo 1.74.0")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(cfg *domain.Config) string
	}{
		{
			name:   "cargo version",
			mutate: func(*domain.Config) string { return "cargo 1.75.0" },
		},
		{
			name: "lockfile",
			mutate: func(cfg *domain.Config) string {
				require.NoError(t, os.WriteFile(cfg.LockfilePath(), []byte("version = 4\n"), 0o600))
				return "cargo 1.74.0"
			},
		},
		{
			name: "manifest features",
			mutate: func(cfg *domain.Config) string {
				manifest := "[package]\nname = \"demo\"\n\n[dependencies]\ntokio = { version = \"1\", features = [\"rt\", \"full\"] }\n"
				require.NoError(t, os.WriteFile(cfg.ManifestPath, []byte(manifest), 0o600))
				return "cargo 1.74.0"
			},
		},
		{
			name: "platforms",
			mutate: func(cfg *domain.Config) string {
				cfg.Platforms = []domain.Platform{"x86_64-unknown-linux-gnu"}
				return "cargo 1.74.0"
			},
		},
		{
			name: "platform labels",
			mutate: func(cfg *domain.Config) string {
				cfg.PlatformLabels = map[domain.Platform][]string{
					"x86_64-unknown-linux-gnu": {"//platforms:linux"},
				}
				return "cargo 1.74.0"
			},
		},
		{
			name: "repository name",
			mutate: func(cfg *domain.Config) string {
				cfg.RepositoryName = "vendored"
				return "cargo 1.74.0"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newProject(t, "version = 3\n")
			version := tt.mutate(cfg)

			got, err := h.ComputeDigest(cfg, version)
			require.NoError(t, err)
			assert.NotEqual(t, baseline, got)
		})
	}
}

func TestHasher_IgnoresQueryTimeout(t *testing.T) {
	h := metadata.NewHasher()
	cfg := newProject(t, "version = 3\n")

	before, err := h.ComputeDigest(cfg, "cargo 1.74.0")
	require.NoError(t, err)
	cfg.QueryTimeout = domain.DefaultQueryTimeout * 2
	after, err := h.ComputeDigest(cfg, "cargo 1.74.0")
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestHasher_MissingLockfile(t *testing.T) {
	cfg := newProject(t, "")
	require.NoError(t, os.Remove(cfg.LockfilePath()))

	_, err := metadata.NewHasher().ComputeDigest(cfg, "cargo 1.74.0")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
}

func TestHasher_ManifestFeatureChange(t *testing.T) {
	h := metadata.NewHasher()
	cfg := newProject(t, "version = 3\n")

	write := func(features string) string {
		manifest := "[package]\nname = \"demo\"\n\n[dependencies]\ntokio = { version = \"1\", features = " + features + " }\n"
		require.NoError(t, os.WriteFile(cfg.ManifestPath, []byte(manifest), 0o600))
		digest, err := h.ComputeDigest(cfg, "cargo 1.74.0")
		require.NoError(t, err)
		return digest
	}

	before := write(`["rt"]`)
	after := write(`["rt", "full"]`)

	assert.NotEqual(t, before, after, "a feature change leaves Cargo.lock untouched but must change the digest")
	assert.Equal(t, before, write(`["rt"]`))
}

func TestHasher_MissingManifest(t *testing.T) {
	cfg := newProject(t, "version = 3\n")
	require.NoError(t, os.Remove(cfg.ManifestPath))

	_, err := metadata.NewHasher().ComputeDigest(cfg, "cargo 1.74.0")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
}
