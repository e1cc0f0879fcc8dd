package domain

import (
	"cmp"
	"errors"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// PackageID identifies a resolved crate by name and exact version.
// It is comparable and can be used directly as a map key.
type PackageID struct {
	Name    string
	Version semver.Version
}

// NewPackageID parses version as a strict three component semantic version.
func NewPackageID(name, version string) (PackageID, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return PackageID{}, zerr.With(zerr.Wrap(errors.Join(ErrInvalidVersion, err), "version "+strconv.Quote(version)), "version", version)
	}
	return PackageID{Name: name, Version: *v}, nil
}

// MustPackageID is like NewPackageID but panics on error. Intended for tests and literals.
func MustPackageID(name, version string) PackageID {
	id, err := NewPackageID(name, version)
	if err != nil {
		panic(err)
	}
	return id
}

// ParsePackageID parses the "name version" form produced by String.
func ParsePackageID(s string) (PackageID, error) {
	name, version, ok := strings.Cut(s, " ")
	if !ok || name == "" {
		return PackageID{}, zerr.With(zerr.Wrap(ErrInvalidPackageID, strconv.Quote(s)), "id", s)
	}
	id, err := NewPackageID(name, version)
	if err != nil {
		return PackageID{}, zerr.With(zerr.Wrap(errors.Join(ErrInvalidPackageID, err), strconv.Quote(s)), "id", s)
	}
	return id, nil
}

// String returns "name version".
func (p PackageID) String() string {
	return p.Name + " " + p.Version.String()
}

// Compare orders by name, then by semantic version precedence, then by the
// literal version text so that build metadata still yields a total order.
func (p PackageID) Compare(o PackageID) int {
	if c := cmp.Compare(p.Name, o.Name); c != 0 {
		return c
	}
	if c := p.Version.Compare(&o.Version); c != 0 {
		return c
	}
	return cmp.Compare(p.Version.Original(), o.Version.Original())
}

// MarshalText implements encoding.TextMarshaler.
func (p PackageID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PackageID) UnmarshalText(text []byte) error {
	id, err := ParsePackageID(string(text))
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// ComparePackageIDs is a comparison function usable with slices.SortFunc.
func ComparePackageIDs(a, b PackageID) int {
	return a.Compare(b)
}
