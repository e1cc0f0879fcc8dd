package metadata

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes the digest recorded in the metadata document.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeDigest hashes everything that influences the resolved metadata:
// the repository name, the manifest location relative to the config root,
// every platform with its labels, the cargo version, the manifest contents
// and the lockfile.
func (h *Hasher) ComputeDigest(cfg *domain.Config, cargoVersion string) (string, error) {
	hasher := xxhash.New()

	manifest, err := filepath.Rel(cfg.Root, cfg.ManifestPath)
	if err != nil {
		manifest = cfg.ManifestPath
	}
	writeField(hasher, cfg.RepositoryName)
	writeField(hasher, filepath.ToSlash(manifest))
	_, _ = hasher.Write([]byte{0})

	mapping := cfg.LabelMapping()
	for _, platform := range slices.Sorted(maps.Keys(mapping)) {
		writeField(hasher, platform)
		for _, label := range mapping[platform] {
			writeField(hasher, label)
		}
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	writeField(hasher, cargoVersion)

	if err := hashFile(hasher, cfg.ManifestPath, domain.ErrManifestReadFailed); err != nil {
		return "", err
	}
	_, _ = hasher.Write([]byte{0})

	if err := hashFile(hasher, cfg.LockfilePath(), domain.ErrLockfileReadFailed); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}

func hashFile(hasher *xxhash.Digest, path string, sentinel error) error {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(sentinel, err), "opening file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(hasher, f); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(sentinel, err), "hashing file"), "path", path)
	}
	return nil
}
