package domain

import (
	"cmp"
	"slices"
)

// Platform is a target triple such as "x86_64-unknown-linux-gnu".
// Distinct values never compare equal even when they describe overlapping
// build configurations.
type Platform string

// String returns the triple.
func (p Platform) String() string {
	return string(p)
}

// Compare orders platforms lexically.
func (p Platform) Compare(o Platform) int {
	return cmp.Compare(p, o)
}

// UniquePlatforms returns the given platforms sorted with duplicates removed.
func UniquePlatforms(platforms []Platform) []Platform {
	out := slices.Clone(platforms)
	slices.Sort(out)
	return slices.Compact(out)
}
