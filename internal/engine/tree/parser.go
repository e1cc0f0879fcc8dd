// Package tree reconstructs per-platform crate features and dependencies from
// `cargo tree` output and factors out what every platform has in common.
package tree

import (
	"errors"
	"strconv"
	"strings"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
)

// Line is one decoded line of `cargo tree --prefix=depth --format=|{p}|{f}|`.
type Line struct {
	Depth    int
	Package  domain.PackageID
	Features []string
}

// ParseLine decodes a single non-blank line. The package part may carry
// trailing annotations such as "(proc-macro)" or a source path, and the line
// may end with a "(*)" duplicate marker; both are ignored.
func ParseLine(line string) (Line, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return Line{}, lineError(line, domain.ErrMalformedTreeLine)
	}

	idParts := strings.Split(parts[1], " ")
	if len(idParts) < 2 || idParts[0] == "" {
		return Line{}, zerr.With(lineError(line, domain.ErrMalformedTreeLine), "crate_id", parts[1])
	}

	versionStr, ok := strings.CutPrefix(idParts[1], "v")
	if !ok {
		return Line{}, zerr.With(lineError(line, domain.ErrInvalidVersion), "version", idParts[1])
	}

	id, err := domain.NewPackageID(idParts[0], versionStr)
	if err != nil {
		return Line{}, lineError(line, err)
	}

	depth, err := strconv.ParseUint(parts[0], 10, 31)
	if err != nil {
		return Line{}, lineError(line, errors.Join(domain.ErrInvalidDepth, err))
	}

	var features []string
	if parts[2] != "" {
		features = strings.Split(parts[2], ",")
	}

	return Line{
		Depth:    int(depth),
		Package:  id,
		Features: features,
	}, nil
}

func lineError(line string, err error) error {
	return zerr.With(zerr.Wrap(err, "parsing cargo tree line "+strconv.Quote(line)), "line", line)
}
