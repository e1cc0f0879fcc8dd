package tree

import (
	"bufio"
	"bytes"
	"slices"
	"strings"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxLineSize = 1 << 20

type record struct {
	features map[string]struct{}
	deps     map[domain.PackageID]struct{}
}

// Reducer rebuilds parent/child edges from a pre-order walk of depth-tagged lines.
// It is not safe for concurrent use.
type Reducer struct {
	parents []domain.PackageID
	records map[domain.PackageID]*record
}

// NewReducer returns an empty Reducer.
func NewReducer() *Reducer {
	return &Reducer{
		records: make(map[domain.PackageID]*record),
	}
}

func (r *Reducer) entry(id domain.PackageID) *record {
	rec, ok := r.records[id]
	if !ok {
		rec = &record{
			features: make(map[string]struct{}),
			deps:     make(map[domain.PackageID]struct{}),
		}
		r.records[id] = rec
	}
	return rec
}

// Add folds one parsed line into the accumulated records.
func (r *Reducer) Add(l Line) {
	if l.Depth+1 <= len(r.parents) {
		r.parents = r.parents[:l.Depth+1]

		// A sibling or a "(*)" revisit replaces the previous occupant of this depth.
		r.parents[len(r.parents)-1] = l.Package
	} else {
		r.parents = append(r.parents, l.Package)
	}

	if l.Depth > 0 && len(r.parents) >= 2 {
		parent := r.parents[len(r.parents)-2]
		r.entry(parent).deps[l.Package] = struct{}{}
	}

	rec := r.entry(l.Package)
	for _, f := range l.Features {
		rec.features[f] = struct{}{}
	}
}

// Entries returns the accumulated per-package records in normalized form.
func (r *Reducer) Entries() map[domain.PackageID]domain.TreeEntry {
	out := make(map[domain.PackageID]domain.TreeEntry, len(r.records))
	for id, rec := range r.records {
		features := make([]string, 0, len(rec.features))
		for f := range rec.features {
			features = append(features, f)
		}
		slices.Sort(features)

		deps := make([]domain.PackageID, 0, len(rec.deps))
		for d := range rec.deps {
			deps = append(deps, d)
		}
		slices.SortFunc(deps, domain.ComparePackageIDs)

		out[id] = domain.TreeEntry{
			Features: nilIfEmpty(features),
			Deps:     nilIfEmpty(deps),
		}
	}
	return out
}

// Reduce parses a complete `cargo tree` output. Blank lines are skipped and
// the first malformed line aborts the whole reduction.
func Reduce(output []byte) (map[domain.PackageID]domain.TreeEntry, error) {
	r := NewReducer()

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		l, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		r.Add(l)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read cargo tree output")
	}

	return r.Entries(), nil
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
