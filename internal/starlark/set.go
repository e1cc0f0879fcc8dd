package starlark

import "slices"

// insertSorted adds v to the sorted slice s unless an equal element is present.
func insertSorted[T any](s []T, v T, compare func(a, b T) int) []T {
	i, found := slices.BinarySearchFunc(s, v, compare)
	if found {
		return s
	}
	return slices.Insert(s, i, v)
}

func removeSorted[T any](s []T, v T, compare func(a, b T) int) []T {
	i, found := slices.BinarySearchFunc(s, v, compare)
	if !found {
		return s
	}
	return slices.Delete(s, i, i+1)
}

func containsSorted[T any](s []T, v T, compare func(a, b T) int) bool {
	_, found := slices.BinarySearchFunc(s, v, compare)
	return found
}

// sortedUnique sorts s in place and drops duplicates.
func sortedUnique[T any](s []T, compare func(a, b T) int) []T {
	slices.SortFunc(s, compare)
	return slices.CompactFunc(s, func(a, b T) bool { return compare(a, b) == 0 })
}
