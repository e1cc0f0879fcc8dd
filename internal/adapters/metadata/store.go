// Package metadata persists resolved tree metadata and computes its digest.
package metadata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.MetadataStore with an indented JSON document.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the document at path. A missing document yields nil, nil.
func (s *Store) Load(path string) (*domain.Metadata, error) {
	//nolint:gosec // Path comes from the resolved configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrMetadataReadFailed, err), "reading metadata"), "path", path)
	}

	var md domain.Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrMetadataUnmarshalFailed, err), "decoding metadata"), "path", path)
	}
	if md.TreeMetadata == nil {
		md.TreeMetadata = domain.TreeMetadata{}
	}

	return &md, nil
}

// Save replaces the document at path through a temporary file and a rename,
// so readers never observe a partial write.
func (s *Store) Save(path string, md *domain.Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrMetadataMarshalFailed, err), "encoding metadata")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return writeError(err, "creating metadata directory", path)
	}

	tmpFile, err := os.CreateTemp(dir, ".metadata-*.json")
	if err != nil {
		return writeError(err, "creating temp metadata file", path)
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return writeError(err, "writing temp metadata file", path)
	}

	if err := tmpFile.Close(); err != nil {
		return writeError(err, "closing temp metadata file", path)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return writeError(err, "setting metadata permissions", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return writeError(err, "replacing metadata", path)
	}

	return nil
}

func writeError(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrMetadataWriteFailed, err), msg), "path", path)
}
