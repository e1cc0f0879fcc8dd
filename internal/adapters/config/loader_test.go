package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/adapters/config"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, "rust/Cargo.toml", "[workspace]\n")
	path := createFile(t, root, domain.ConfigFileName, `
version: "1"
manifest: rust/Cargo.toml
repository_name: crate_index
cargo: /opt/cargo
rustc: /opt/rustc
query_timeout: 90s
supported_platform_triples:
  - x86_64-unknown-linux-gnu
  - aarch64-apple-darwin
platform_labels:
  aarch64-apple-darwin:
    - "@platforms//os:macos"
    - "@platforms//cpu:aarch64"
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "rust", "Cargo.toml"), cfg.ManifestPath)
	assert.Equal(t, "crate_index", cfg.RepositoryName)
	assert.Equal(t, "/opt/cargo", cfg.Cargo)
	assert.Equal(t, "/opt/rustc", cfg.Rustc)
	assert.Equal(t, 90*time.Second, cfg.QueryTimeout)
	assert.Equal(t, []domain.Platform{"aarch64-apple-darwin", "x86_64-unknown-linux-gnu"}, cfg.Platforms)
	assert.Equal(t, map[string][]string{
		"aarch64-apple-darwin":     {"@platforms//cpu:aarch64", "@platforms//os:macos"},
		"x86_64-unknown-linux-gnu": {"@rules_rust//rust/platform:x86_64-unknown-linux-gnu"},
	}, cfg.LabelMapping())
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ManifestFileName, "[package]\n")
	path := createFile(t, root, domain.ConfigFileName, "supported_platform_triples: [wasm32-unknown-unknown]\n")

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, domain.ManifestFileName), cfg.ManifestPath)
	assert.Equal(t, domain.DefaultRepositoryName, cfg.RepositoryName)
	assert.Equal(t, domain.DefaultQueryTimeout, cfg.QueryTimeout)
	assert.Empty(t, cfg.Cargo)
	assert.Equal(t, filepath.Join(root, domain.MetadataFileName), cfg.MetadataPath())
	assert.Equal(t, filepath.Join(root, domain.LockfileName), cfg.LockfilePath())
}

func TestLoader_Load_Warnings(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn("duplicate entries in supported_platform_triples were ignored")
	mockLogger.EXPECT().Warn("platform_labels entry i686-pc-windows-msvc does not name a supported platform triple")

	root := t.TempDir()
	createFile(t, root, domain.ManifestFileName, "[package]\n")
	path := createFile(t, root, domain.ConfigFileName, `
supported_platform_triples:
  - x86_64-pc-windows-msvc
  - x86_64-pc-windows-msvc
platform_labels:
  i686-pc-windows-msvc: ["//platforms:win32"]
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{"x86_64-pc-windows-msvc"}, cfg.Platforms)
	assert.Empty(t, cfg.PlatformLabels)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		manifest bool
		wantErr  error
		wantMeta map[string]any
	}{
		{
			name:     "no platforms",
			config:   "version: \"1\"\n",
			manifest: true,
			wantErr:  domain.ErrNoPlatforms,
		},
		{
			name:     "empty file",
			config:   "",
			manifest: true,
			wantErr:  domain.ErrNoPlatforms,
		},
		{
			name:     "unknown key",
			config:   "platforms: [x86_64-unknown-linux-gnu]\n",
			manifest: true,
			wantErr:  domain.ErrConfigParseFailed,
		},
		{
			name:     "unsupported version",
			config:   "version: \"2\"\nsupported_platform_triples: [x86_64-unknown-linux-gnu]\n",
			manifest: true,
			wantErr:  domain.ErrConfigParseFailed,
			wantMeta: map[string]any{"version": "2"},
		},
		{
			name:     "invalid timeout",
			config:   "query_timeout: soon\nsupported_platform_triples: [x86_64-unknown-linux-gnu]\n",
			manifest: true,
			wantErr:  domain.ErrInvalidTimeout,
			wantMeta: map[string]any{"query_timeout": "soon"},
		},
		{
			name:     "negative timeout",
			config:   "query_timeout: -1m\nsupported_platform_triples: [x86_64-unknown-linux-gnu]\n",
			manifest: true,
			wantErr:  domain.ErrInvalidTimeout,
		},
		{
			name:    "missing manifest",
			config:  "supported_platform_triples: [x86_64-unknown-linux-gnu]\n",
			wantErr: domain.ErrManifestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			if tt.manifest {
				createFile(t, root, domain.ManifestFileName, "[package]\n")
			}
			path := createFile(t, root, domain.ConfigFileName, tt.config)

			_, err := loader.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, path, zErr.Metadata()["path"])
			for k, v := range tt.wantMeta {
				assert.Equal(t, v, zErr.Metadata()[k])
			}
		})
	}
}

func TestLoader_Load_ReadError(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoader_Discover(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	want := createFile(t, root, domain.ConfigFileName, "")
	nested := filepath.Join(root, "crates", "core", "src")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := loader.Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_Discover_NotFound(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Discover(t.TempDir())
	if err == nil {
		t.Skip("a crates.yaml exists above the temp directory")
	}
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
