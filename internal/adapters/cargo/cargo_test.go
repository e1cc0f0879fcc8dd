package cargo_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/adapters/cargo"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const fakeCargo = `#!/bin/sh
if [ "$1" = "-Zbindeps" ]; then
	echo "nightly-flag" >> "$FAKE_CARGO_LOG"
	shift
fi
case "$1" in
version)
	echo "version" >> "$FAKE_CARGO_LOG"
	echo "${FAKE_CARGO_VERSION:-cargo 1.75.0 (1d8b05cdd 2023-11-20)}"
	;;
tree)
	for arg in "$@"; do echo "arg:$arg" >> "$FAKE_CARGO_LOG"; done
	echo "pwd:$(pwd -P)" >> "$FAKE_CARGO_LOG"
	echo "rustc:$RUSTC" >> "$FAKE_CARGO_LOG"
	echo "protocol:$CARGO_REGISTRIES_CRATES_IO_PROTOCOL" >> "$FAKE_CARGO_LOG"
	if [ -n "$FAKE_CARGO_FAIL" ]; then
		echo "partial output"
		echo "error: the lock file needs to be updated" >&2
		exit 101
	fi
	echo "0|demo 0.1.0 (/work)|default|"
	echo "1|serde 1.0.190|std|"
	;;
esac
`

// newFakeCargo writes a scripted cargo into a temp dir and returns its path
// together with the file it logs invocations to.
func newFakeCargo(t *testing.T) (bin, logPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}

	dir := t.TempDir()
	bin = filepath.Join(dir, "cargo")
	require.NoError(t, os.WriteFile(bin, []byte(fakeCargo), 0o755))

	logPath = filepath.Join(dir, "invocations.log")
	t.Setenv("FAKE_CARGO_LOG", logPath)
	t.Setenv(cargo.CargoEnvVar, "")
	t.Setenv(cargo.RustcEnvVar, "")
	return bin, logPath
}

func readLog(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func count(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		want      string
		wantPre   string
		wantError bool
	}{
		{name: "stable", output: "cargo 1.75.0 (1d8b05cdd 2023-11-20)", want: "1.75.0"},
		{name: "nightly", output: "cargo 1.77.0-nightly (7bb7b5395 2024-01-20)", want: "1.77.0-nightly", wantPre: "nightly"},
		{name: "missing version", output: "cargo", wantError: true},
		{name: "garbage version", output: "cargo one.two", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := cargo.ParseVersion(tt.output)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrCargoVersionUnparseable)
				var zErr *zerr.Error
				require.ErrorAs(t, err, &zErr)
				assert.Equal(t, tt.output, zErr.Metadata()["output"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.wantPre, v.Prerelease())
		})
	}
}

func TestBinary_FullVersionIsCached(t *testing.T) {
	bin, logPath := newFakeCargo(t)
	b := cargo.NewBinary(bin, "rustc")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := b.FullVersion(t.Context())
			assert.NoError(t, err)
			assert.Equal(t, "cargo 1.75.0 (1d8b05cdd 2023-11-20)", v)
		}()
	}
	wg.Wait()

	_, err := b.FullVersion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count(readLog(t, logPath), "version"))
}

func TestBinary_VersionFacts(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		wantNightly bool
		wantSparse  bool
	}{
		{name: "old stable", version: "cargo 1.67.1 (8ecd4f20a 2023-01-10)"},
		{name: "sparse stable", version: "cargo 1.68.0 (115f34552 2023-02-26)", wantSparse: true},
		{name: "nightly", version: "cargo 1.77.0-nightly (7bb7b5395 2024-01-20)", wantNightly: true, wantSparse: true},
		{name: "next major", version: "cargo 2.0.0 (0000000 2030-01-01)", wantSparse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin, _ := newFakeCargo(t)
			t.Setenv("FAKE_CARGO_VERSION", tt.version)
			b := cargo.NewBinary(bin, "rustc")

			nightly, err := b.IsNightly(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.wantNightly, nightly)

			sparse, err := b.UsesSparseRegistries(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.wantSparse, sparse)
		})
	}
}

func TestBinary_FullVersionFailure(t *testing.T) {
	t.Setenv(cargo.CargoEnvVar, "")
	b := cargo.NewBinary(filepath.Join(t.TempDir(), "missing-cargo"), "rustc")

	_, err := b.FullVersion(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCargoVersionFailed)
}

func TestBinary_Configure(t *testing.T) {
	bin, logPath := newFakeCargo(t)
	b := cargo.NewBinary("cargo", "rustc")

	b.Configure(&domain.Config{Cargo: bin, Rustc: "/opt/rust/bin/rustc"})
	assert.Equal(t, bin, b.Path())
	assert.Equal(t, "/opt/rust/bin/rustc", b.Rustc())

	_, err := b.FullVersion(t.Context())
	require.NoError(t, err)

	t.Setenv(cargo.RustcEnvVar, "/env/rustc")
	b.Configure(&domain.Config{Cargo: bin, Rustc: "/opt/rust/bin/rustc"})
	assert.Equal(t, "/env/rustc", b.Rustc(), "environment wins over configuration")

	_, err = b.FullVersion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count(readLog(t, logPath), "version"), "same cargo keeps the cached version")
}

func TestTreeQuerier_QueryTree(t *testing.T) {
	bin, logPath := newFakeCargo(t)
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	workspace := t.TempDir()
	manifest := filepath.Join(workspace, domain.ManifestFileName)
	q := cargo.NewTreeQuerier(cargo.NewBinary(bin, "/opt/rustc"), log)

	out, err := q.QueryTree(t.Context(), manifest, "x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Equal(t, "0|demo 0.1.0 (/work)|default|\n1|serde 1.0.190|std|\n", string(out))

	lines := readLog(t, logPath)
	var args []string
	for _, l := range lines {
		if a, ok := strings.CutPrefix(l, "arg:"); ok {
			args = append(args, a)
		}
	}
	assert.Equal(t, cargo.TreeArgs(manifest, "x86_64-unknown-linux-gnu"), args)
	assert.Contains(t, lines, "rustc:/opt/rustc")
	assert.Contains(t, lines, "protocol:sparse")
	assert.NotContains(t, lines, "nightly-flag")

	resolved, err := filepath.EvalSymlinks(workspace)
	require.NoError(t, err)
	assert.Contains(t, lines, "pwd:"+resolved)
}

func TestTreeQuerier_Nightly(t *testing.T) {
	bin, logPath := newFakeCargo(t)
	t.Setenv("FAKE_CARGO_VERSION", "cargo 1.77.0-nightly (7bb7b5395 2024-01-20)")
	ctrl := gomock.NewController(t)

	q := cargo.NewTreeQuerier(cargo.NewBinary(bin, "rustc"), mocks.NewMockLogger(ctrl))
	_, err := q.QueryTree(t.Context(), filepath.Join(t.TempDir(), domain.ManifestFileName), "aarch64-apple-darwin")
	require.NoError(t, err)

	assert.Contains(t, readLog(t, logPath), "nightly-flag")
}

func TestTreeQuerier_Failure(t *testing.T) {
	bin, _ := newFakeCargo(t)
	t.Setenv("FAKE_CARGO_FAIL", "1")
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("partial output")
	log.EXPECT().Warn("error: the lock file needs to be updated")

	q := cargo.NewTreeQuerier(cargo.NewBinary(bin, "rustc"), log)
	_, err := q.QueryTree(t.Context(), filepath.Join(t.TempDir(), domain.ManifestFileName), "wasm32-unknown-unknown")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTreeQueryFailed)
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 101, zErr.Metadata()["exit_code"])
	assert.Equal(t, "error: the lock file needs to be updated", zErr.Metadata()["stderr"])
}
