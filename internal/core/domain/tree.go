package domain

import (
	"encoding/json"
	"slices"
)

// TreeEntry is the observed state of one package on one platform: the
// features enabled on it and the packages it depends on directly.
// Both slices are kept sorted and free of duplicates.
type TreeEntry struct {
	Features []string    `json:"features,omitempty"`
	Deps     []PackageID `json:"deps,omitempty"`
}

// NewTreeEntry builds a normalized entry from unordered inputs.
func NewTreeEntry(features []string, deps []PackageID) TreeEntry {
	f := slices.Clone(features)
	slices.Sort(f)
	d := slices.Clone(deps)
	slices.SortFunc(d, ComparePackageIDs)
	return TreeEntry{
		Features: slices.Compact(f),
		Deps:     slices.Compact(d),
	}
}

// IsEmpty reports whether the entry has neither features nor deps.
func (e TreeEntry) IsEmpty() bool {
	return len(e.Features) == 0 && len(e.Deps) == 0
}

// TreeSelect is the aggregated record of a package across platforms.
// Common holds what every platform that observed the package agrees on.
// Selects holds per-platform deltas; no delta is empty and none overlaps Common.
type TreeSelect struct {
	Common  TreeEntry
	Selects map[Platform]TreeEntry
}

type treeSelectJSON struct {
	Common  *TreeEntry             `json:"common,omitempty"`
	Selects map[Platform]TreeEntry `json:"selects"`
}

// MarshalJSON omits an empty common entry and always emits selects.
func (s TreeSelect) MarshalJSON() ([]byte, error) {
	out := treeSelectJSON{Selects: s.Selects}
	if !s.Common.IsEmpty() {
		common := s.Common
		out.Common = &common
	}
	if out.Selects == nil {
		out.Selects = map[Platform]TreeEntry{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *TreeSelect) UnmarshalJSON(data []byte) error {
	var in treeSelectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Common = TreeEntry{}
	if in.Common != nil {
		s.Common = *in.Common
	}
	s.Selects = in.Selects
	if s.Selects == nil {
		s.Selects = map[Platform]TreeEntry{}
	}
	return nil
}

// Platforms returns the platforms with a delta, sorted.
func (s TreeSelect) Platforms() []Platform {
	out := make([]Platform, 0, len(s.Selects))
	for p := range s.Selects {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// TreeMetadata maps every package seen in any platform's tree to its aggregated record.
type TreeMetadata map[PackageID]TreeSelect

// Packages returns the package ids in sorted order.
func (m TreeMetadata) Packages() []PackageID {
	out := make([]PackageID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.SortFunc(out, ComparePackageIDs)
	return out
}

// Metadata is the document persisted after a resolution run.
type Metadata struct {
	CargoVersion string       `json:"cargo_version"`
	Digest       string       `json:"digest"`
	TreeMetadata TreeMetadata `json:"tree_metadata"`
}
