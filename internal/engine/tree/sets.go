package tree

import (
	"cmp"

	"go.trai.ch/crates/internal/core/domain"
)

// intersect returns the elements present in both sorted slices.
func intersect[T any](a, b []T, compare func(T, T) int) []T {
	var out []T
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := compare(a[i], b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// difference returns the elements of sorted a that are absent from sorted b.
func difference[T any](a, b []T, compare func(T, T) int) []T {
	var out []T
	j := 0
	for _, v := range a {
		for j < len(b) && compare(b[j], v) < 0 {
			j++
		}
		if j < len(b) && compare(b[j], v) == 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

func intersectEntries(a, b domain.TreeEntry) domain.TreeEntry {
	return domain.TreeEntry{
		Features: intersect(a.Features, b.Features, cmp.Compare[string]),
		Deps:     intersect(a.Deps, b.Deps, domain.ComparePackageIDs),
	}
}

func subtractEntries(a, b domain.TreeEntry) domain.TreeEntry {
	return domain.TreeEntry{
		Features: difference(a.Features, b.Features, cmp.Compare[string]),
		Deps:     difference(a.Deps, b.Deps, domain.ComparePackageIDs),
	}
}
