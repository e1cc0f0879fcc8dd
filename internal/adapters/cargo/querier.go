package cargo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/zerr"
)

// TreeQuerier implements ports.TreeQuerier with `cargo tree`.
type TreeQuerier struct {
	bin    *Binary
	logger ports.Logger
}

// NewTreeQuerier creates a TreeQuerier running bin.
func NewTreeQuerier(bin *Binary, logger ports.Logger) *TreeQuerier {
	return &TreeQuerier{bin: bin, logger: logger}
}

// TreeArgs returns the `cargo tree` arguments for manifestPath on platform.
func TreeArgs(manifestPath string, platform domain.Platform) []string {
	return []string{
		"tree",
		"--locked",
		"--manifest-path", manifestPath,
		"--edges", "normal,build,dev",
		"--prefix=depth",
		"--format=" + domain.TreeFormat,
		"--color=never",
		"--workspace",
		"--target", platform.String(),
	}
}

// QueryTree runs `cargo tree` from the manifest's directory and returns its
// standard output. When ctx carries a telemetry vertex, both streams are
// mirrored to it.
func (q *TreeQuerier) QueryTree(ctx context.Context, manifestPath string, platform domain.Platform) ([]byte, error) {
	cmd, err := q.bin.Command(ctx, filepath.Dir(manifestPath), TreeArgs(manifestPath, platform)...)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(&stdout, vertex.Stdout())
		cmd.Stderr = io.MultiWriter(&stderr, vertex.Stderr())
	}

	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(stdout.String()); out != "" {
			q.logger.Warn(out)
		}
		if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
			q.logger.Warn(errOut)
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.With(
			zerr.Wrap(errors.Join(domain.ErrTreeQueryFailed, err), "cargo tree exited unsuccessfully"),
			"exit_code", exitCode),
			"stderr", strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}
