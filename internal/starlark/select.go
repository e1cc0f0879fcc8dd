// Package starlark models platform-conditional collections and renders them
// as Starlark expressions built from select() calls.
package starlark

import (
	"cmp"
	"encoding/json"
	"iter"
	"maps"
	"slices"
)

// Common is the configuration name for values that apply on every platform.
const Common = ""

// SelectList is a set of values where each value either applies
// unconditionally or only under a set of named configurations.
//
// A value held in the common set is never also held by a configuration.
type SelectList[T any] struct {
	compare  func(a, b T) int
	common   []T
	selects  map[string][]T
	unmapped []T
}

// NewSelectList returns an empty SelectList ordered by the natural order of T.
func NewSelectList[T cmp.Ordered]() *SelectList[T] {
	return NewSelectListFunc(cmp.Compare[T])
}

// NewSelectListFunc returns an empty SelectList ordered by compare.
func NewSelectListFunc[T any](compare func(a, b T) int) *SelectList[T] {
	return &SelectList[T]{
		compare: compare,
		selects: make(map[string][]T),
	}
}

// Insert adds value under configuration. Inserting under Common removes the
// value from every configuration; inserting under a configuration is a no-op
// when the value is already common.
func (s *SelectList[T]) Insert(value T, configuration string) {
	if configuration == Common {
		for cfg, values := range s.selects {
			values = removeSorted(values, value, s.compare)
			if len(values) == 0 {
				delete(s.selects, cfg)
				continue
			}
			s.selects[cfg] = values
		}
		s.common = insertSorted(s.common, value, s.compare)
		return
	}

	if containsSorted(s.common, value, s.compare) {
		return
	}
	s.selects[configuration] = insertSorted(s.selects[configuration], value, s.compare)
}

// Get returns the values held by configuration. Common always reports true.
func (s *SelectList[T]) Get(configuration string) ([]T, bool) {
	if configuration == Common {
		return slices.Clone(s.common), true
	}
	values, ok := s.selects[configuration]
	return slices.Clone(values), ok
}

// Common returns the unconditional values in order.
func (s *SelectList[T]) Common() []T {
	return slices.Clone(s.common)
}

// Unmapped returns values whose configuration matched no platform.
func (s *SelectList[T]) Unmapped() []T {
	return slices.Clone(s.unmapped)
}

// Configurations returns the configuration names in byte order, with Common
// first when the common set is non-empty.
func (s *SelectList[T]) Configurations() []string {
	configs := slices.Sorted(maps.Keys(s.selects))
	if len(s.common) > 0 {
		configs = append([]string{Common}, configs...)
	}
	return configs
}

// AllBranches yields the common values followed by each configuration's
// values in configuration order.
func (s *SelectList[T]) AllBranches() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.common {
			if !yield(v) {
				return
			}
		}
		for _, cfg := range slices.Sorted(maps.Keys(s.selects)) {
			for _, v := range s.selects[cfg] {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// IsEmpty reports whether the list holds no values at all.
func (s *SelectList[T]) IsEmpty() bool {
	return len(s.common) == 0 && len(s.selects) == 0 && len(s.unmapped) == 0
}

// MapConfigurationNames returns a copy with every configuration renamed by
// rename. rename must be injective over the current names.
func (s *SelectList[T]) MapConfigurationNames(rename func(string) string) *SelectList[T] {
	out := &SelectList[T]{
		compare:  s.compare,
		common:   slices.Clone(s.common),
		selects:  make(map[string][]T, len(s.selects)),
		unmapped: slices.Clone(s.unmapped),
	}
	for cfg, values := range s.selects {
		out.selects[rename(cfg)] = slices.Clone(values)
	}
	return out
}

// MarshalJSON encodes the list as an object with common, selects and, when
// present, unmapped members.
func (s *SelectList[T]) MarshalJSON() ([]byte, error) {
	type selectListJSON struct {
		Common   []T            `json:"common"`
		Selects  map[string][]T `json:"selects"`
		Unmapped []T            `json:"unmapped,omitempty"`
	}
	common := s.common
	if common == nil {
		common = []T{}
	}
	return json.Marshal(selectListJSON{Common: common, Selects: s.selects, Unmapped: s.unmapped})
}

// MapList transforms every value of s with f. Mapped configuration values
// that collide with a mapped common value are dropped.
func MapList[T, U any](s *SelectList[T], f func(T) U, compare func(a, b U) int) *SelectList[U] {
	out := NewSelectListFunc(compare)
	for _, v := range s.common {
		out.common = append(out.common, f(v))
	}
	out.common = sortedUnique(out.common, compare)

	for cfg, values := range s.selects {
		var mapped []U
		for _, v := range values {
			u := f(v)
			if containsSorted(out.common, u, compare) {
				continue
			}
			mapped = append(mapped, u)
		}
		if len(mapped) > 0 {
			out.selects[cfg] = sortedUnique(mapped, compare)
		}
	}

	for _, v := range s.unmapped {
		out.unmapped = append(out.unmapped, f(v))
	}
	out.unmapped = sortedUnique(out.unmapped, compare)
	return out
}

// SelectDict is a string-keyed map where each entry either applies
// unconditionally or only under a named configuration.
//
// A key held in the common map is never also held by a configuration.
type SelectDict[T any] struct {
	compare  func(a, b T) int
	common   map[string]T
	selects  map[string]map[string]T
	unmapped map[string]T
}

// NewSelectDict returns an empty SelectDict whose values use their natural order.
func NewSelectDict[T cmp.Ordered]() *SelectDict[T] {
	return NewSelectDictFunc(cmp.Compare[T])
}

// NewSelectDictFunc returns an empty SelectDict whose values are ordered by compare.
func NewSelectDictFunc[T any](compare func(a, b T) int) *SelectDict[T] {
	return &SelectDict[T]{
		compare:  compare,
		common:   make(map[string]T),
		selects:  make(map[string]map[string]T),
		unmapped: make(map[string]T),
	}
}

// Insert sets key to value under configuration, following the same
// precedence rules as SelectList.Insert.
func (d *SelectDict[T]) Insert(key string, value T, configuration string) {
	if configuration == Common {
		for cfg, entries := range d.selects {
			delete(entries, key)
			if len(entries) == 0 {
				delete(d.selects, cfg)
			}
		}
		d.common[key] = value
		return
	}

	if _, ok := d.common[key]; ok {
		return
	}
	entries, ok := d.selects[configuration]
	if !ok {
		entries = make(map[string]T)
		d.selects[configuration] = entries
	}
	entries[key] = value
}

// Get returns the entries held by configuration. Common always reports true.
func (d *SelectDict[T]) Get(configuration string) (map[string]T, bool) {
	if configuration == Common {
		return maps.Clone(d.common), true
	}
	entries, ok := d.selects[configuration]
	return maps.Clone(entries), ok
}

// Common returns the unconditional entries.
func (d *SelectDict[T]) Common() map[string]T {
	return maps.Clone(d.common)
}

// Unmapped returns entries whose configuration matched no platform.
func (d *SelectDict[T]) Unmapped() map[string]T {
	return maps.Clone(d.unmapped)
}

// Configurations returns the configuration names in byte order, with Common
// first when the common map is non-empty.
func (d *SelectDict[T]) Configurations() []string {
	configs := slices.Sorted(maps.Keys(d.selects))
	if len(d.common) > 0 {
		configs = append([]string{Common}, configs...)
	}
	return configs
}

// IsEmpty reports whether the dict holds no entries at all.
func (d *SelectDict[T]) IsEmpty() bool {
	return len(d.common) == 0 && len(d.selects) == 0 && len(d.unmapped) == 0
}

// MapConfigurationNames returns a copy with every configuration renamed by rename.
func (d *SelectDict[T]) MapConfigurationNames(rename func(string) string) *SelectDict[T] {
	out := NewSelectDictFunc(d.compare)
	maps.Copy(out.common, d.common)
	maps.Copy(out.unmapped, d.unmapped)
	for cfg, entries := range d.selects {
		out.selects[rename(cfg)] = maps.Clone(entries)
	}
	return out
}

// MarshalJSON encodes the dict as an object with common, selects and, when
// present, unmapped members.
func (d *SelectDict[T]) MarshalJSON() ([]byte, error) {
	type selectDictJSON struct {
		Common   map[string]T            `json:"common"`
		Selects  map[string]map[string]T `json:"selects"`
		Unmapped map[string]T            `json:"unmapped,omitempty"`
	}
	return json.Marshal(selectDictJSON{Common: d.common, Selects: d.selects, Unmapped: d.unmapped})
}

// MapDict transforms every value of d with f.
func MapDict[T, U any](d *SelectDict[T], f func(T) U, compare func(a, b U) int) *SelectDict[U] {
	out := NewSelectDictFunc(compare)
	for k, v := range d.common {
		out.common[k] = f(v)
	}
	for cfg, entries := range d.selects {
		mapped := make(map[string]U, len(entries))
		for k, v := range entries {
			mapped[k] = f(v)
		}
		out.selects[cfg] = mapped
	}
	for k, v := range d.unmapped {
		out.unmapped[k] = f(v)
	}
	return out
}
