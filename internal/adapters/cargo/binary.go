// Package cargo runs the cargo binary.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	// CargoEnvVar overrides the configured cargo binary.
	CargoEnvVar = "CARGO"
	// RustcEnvVar overrides the configured rustc binary.
	RustcEnvVar = "RUSTC"

	sparseProtocolEnvVar = "CARGO_REGISTRIES_CRATES_IO_PROTOCOL"
	sparseMinMinor       = 68
)

// Binary is a cargo executable together with the rustc it should use.
// The `cargo version` probe runs at most once per binary selection.
type Binary struct {
	mu          sync.Mutex
	cargo       string
	rustc       string
	fullVersion string
	group       singleflight.Group
}

// NewBinary creates a Binary for the given cargo and rustc paths.
func NewBinary(cargo, rustc string) *Binary {
	return &Binary{cargo: cargo, rustc: rustc}
}

// NewBinaryFromEnv creates a Binary from $CARGO and $RUSTC, defaulting to
// the binaries found on PATH.
func NewBinaryFromEnv() *Binary {
	return NewBinary(envOr(CargoEnvVar, "cargo"), envOr(RustcEnvVar, "rustc"))
}

// Configure applies the binaries named by cfg unless $CARGO or $RUSTC is
// set. Changing the cargo binary drops the cached version.
func (b *Binary) Configure(cfg *domain.Config) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cargo := firstNonEmpty(os.Getenv(CargoEnvVar), cfg.Cargo, b.cargo)
	if cargo != b.cargo {
		b.cargo = cargo
		b.fullVersion = ""
	}
	b.rustc = firstNonEmpty(os.Getenv(RustcEnvVar), cfg.Rustc, b.rustc)
}

// Path returns the cargo binary in use.
func (b *Binary) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cargo
}

// Rustc returns the rustc binary passed to cargo.
func (b *Binary) Rustc() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rustc
}

// FullVersion returns the trimmed output of `cargo version`.
func (b *Binary) FullVersion(ctx context.Context) (string, error) {
	b.mu.Lock()
	cargo, cached := b.cargo, b.fullVersion
	b.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	v, err, _ := b.group.Do(cargo, func() (any, error) {
		b.mu.Lock()
		if b.cargo == cargo && b.fullVersion != "" {
			defer b.mu.Unlock()
			return b.fullVersion, nil
		}
		b.mu.Unlock()

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, cargo, "version") //nolint:gosec // configured cargo binary
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			return "", zerr.With(zerr.With(
				zerr.Wrap(errors.Join(domain.ErrCargoVersionFailed, err), "running cargo version"),
				"cargo", cargo),
				"stderr", strings.TrimSpace(stderr.String()))
		}

		version := strings.TrimSpace(string(out))
		b.mu.Lock()
		if b.cargo == cargo {
			b.fullVersion = version
		}
		b.mu.Unlock()
		return version, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Version returns the semantic version reported by `cargo version`.
func (b *Binary) Version(ctx context.Context) (*semver.Version, error) {
	full, err := b.FullVersion(ctx)
	if err != nil {
		return nil, err
	}
	return ParseVersion(full)
}

// IsNightly reports whether cargo is a nightly build.
func (b *Binary) IsNightly(ctx context.Context) (bool, error) {
	v, err := b.Version(ctx)
	if err != nil {
		return false, err
	}
	return v.Prerelease() == "nightly", nil
}

// UsesSparseRegistries reports whether crates.io should be read through the
// sparse protocol, which cargo supports from 1.68.
func (b *Binary) UsesSparseRegistries(ctx context.Context) (bool, error) {
	v, err := b.Version(ctx)
	if err != nil {
		return false, err
	}
	return v.Major() > 1 || (v.Major() == 1 && v.Minor() >= sparseMinMinor), nil
}

// Command builds a cargo invocation running in dir with the toolchain
// environment applied.
func (b *Binary) Command(ctx context.Context, dir string, args ...string) (*exec.Cmd, error) {
	nightly, err := b.IsNightly(ctx)
	if err != nil {
		return nil, err
	}
	sparse, err := b.UsesSparseRegistries(ctx)
	if err != nil {
		return nil, err
	}

	if nightly {
		args = append([]string{"-Zbindeps"}, args...)
	}

	cmd := exec.CommandContext(ctx, b.Path(), args...) //nolint:gosec // configured cargo binary
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), RustcEnvVar+"="+b.Rustc())
	if sparse {
		cmd.Env = append(cmd.Env, sparseProtocolEnvVar+"=sparse")
	}
	return cmd, nil
}

// ParseVersion extracts the version from `cargo version` output such as
// "cargo 1.75.0 (1d8b05cdd 2023-11-20)".
func ParseVersion(full string) (*semver.Version, error) {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return nil, zerr.With(zerr.Wrap(domain.ErrCargoVersionUnparseable, "missing version field"), "output", full)
	}
	v, err := semver.StrictNewVersion(fields[1])
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrCargoVersionUnparseable, err), "parsing "+strconv.Quote(fields[1])), "output", full)
	}
	return v, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
