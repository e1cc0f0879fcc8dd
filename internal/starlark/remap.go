package starlark

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// WithOriginalConfigurations pairs a value with the configurations it was
// declared under before remapping. A nil Original marks a common value.
type WithOriginalConfigurations[T any] struct {
	Value    T
	Original []string
}

// CompareWithOriginal orders values first by value, then by their original
// configurations, with common values sorting first.
func CompareWithOriginal[T any](compare func(a, b T) int) func(a, b WithOriginalConfigurations[T]) int {
	return func(a, b WithOriginalConfigurations[T]) int {
		if c := compare(a.Value, b.Value); c != 0 {
			return c
		}
		switch {
		case a.Original == nil && b.Original == nil:
			return 0
		case a.Original == nil:
			return -1
		case b.Original == nil:
			return 1
		}
		return slices.Compare(a.Original, b.Original)
	}
}

// LooksLikeLabel reports whether configuration is a Bazel label rather than
// a cfg() expression or target triple.
func LooksLikeLabel(configuration string) bool {
	return strings.Contains(configuration, "//")
}

type provenance[T any] struct {
	value   T
	origins []string
}

func (p *provenance[T]) add(origin string) {
	p.origins = insertSorted(p.origins, origin, cmp.Compare[string])
}

// RemapList rewrites the configurations of s through mapping, which sends
// each original configuration to the platforms it holds on. Configurations
// absent from mapping are kept as-is when they look like labels and are
// otherwise collected as unmapped.
func RemapList[T any](s *SelectList[T], mapping map[string][]string) *SelectList[WithOriginalConfigurations[T]] {
	remapped := make(map[string][]*provenance[T])
	var unmapped []*provenance[T]

	record := func(dest []*provenance[T], value T, origin string) []*provenance[T] {
		i, found := slices.BinarySearchFunc(dest, value, func(p *provenance[T], v T) int {
			return s.compare(p.value, v)
		})
		if !found {
			dest = slices.Insert(dest, i, &provenance[T]{value: value})
		}
		dest[i].add(origin)
		return dest
	}

	for _, origin := range slices.Sorted(maps.Keys(s.selects)) {
		values := s.selects[origin]
		targets, ok := mapping[origin]
		switch {
		case ok:
			for _, target := range targets {
				for _, v := range values {
					remapped[target] = record(remapped[target], v, origin)
				}
			}
		case LooksLikeLabel(origin):
			for _, v := range values {
				remapped[origin] = record(remapped[origin], v, origin)
			}
		default:
			for _, v := range values {
				unmapped = record(unmapped, v, origin)
			}
		}
	}

	out := NewSelectListFunc(CompareWithOriginal(s.compare))
	for _, v := range s.common {
		out.common = append(out.common, WithOriginalConfigurations[T]{Value: v})
	}
	for target, entries := range remapped {
		values := make([]WithOriginalConfigurations[T], 0, len(entries))
		for _, p := range entries {
			values = append(values, WithOriginalConfigurations[T]{Value: p.value, Original: p.origins})
		}
		out.selects[target] = values
	}
	for _, v := range s.unmapped {
		out.unmapped = append(out.unmapped, WithOriginalConfigurations[T]{Value: v})
	}
	for _, p := range unmapped {
		out.unmapped = append(out.unmapped, WithOriginalConfigurations[T]{Value: p.value, Original: p.origins})
	}
	out.unmapped = sortedUnique(out.unmapped, out.compare)
	return out
}

// RemapDict is the SelectDict counterpart of RemapList. When one key
// receives different values under the same new configuration, the greatest
// value wins.
func RemapDict[T any](d *SelectDict[T], mapping map[string][]string) *SelectDict[WithOriginalConfigurations[T]] {
	remapped := make(map[string]map[string]*provenance[T])
	unmapped := make(map[string]*provenance[T])

	record := func(dest map[string]*provenance[T], key string, value T, origin string) {
		current, ok := dest[key]
		switch {
		case !ok:
			current = &provenance[T]{value: value}
			dest[key] = current
		case d.compare(value, current.value) > 0:
			current = &provenance[T]{value: value}
			dest[key] = current
		case d.compare(value, current.value) < 0:
			return
		}
		current.add(origin)
	}
	target := func(name string) map[string]*provenance[T] {
		dest, ok := remapped[name]
		if !ok {
			dest = make(map[string]*provenance[T])
			remapped[name] = dest
		}
		return dest
	}

	for _, origin := range slices.Sorted(maps.Keys(d.selects)) {
		entries := d.selects[origin]
		targets, ok := mapping[origin]
		for _, key := range slices.Sorted(maps.Keys(entries)) {
			value := entries[key]
			switch {
			case ok:
				for _, t := range targets {
					record(target(t), key, value, origin)
				}
			case LooksLikeLabel(origin):
				record(target(origin), key, value, origin)
			default:
				record(unmapped, key, value, origin)
			}
		}
	}

	out := NewSelectDictFunc(CompareWithOriginal(d.compare))
	for k, v := range d.common {
		out.common[k] = WithOriginalConfigurations[T]{Value: v}
	}
	for name, entries := range remapped {
		values := make(map[string]WithOriginalConfigurations[T], len(entries))
		for k, p := range entries {
			values[k] = WithOriginalConfigurations[T]{Value: p.value, Original: p.origins}
		}
		out.selects[name] = values
	}
	for k, v := range d.unmapped {
		out.unmapped[k] = WithOriginalConfigurations[T]{Value: v}
	}
	for k, p := range unmapped {
		out.unmapped[k] = WithOriginalConfigurations[T]{Value: p.value, Original: p.origins}
	}
	return out
}
