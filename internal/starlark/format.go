package starlark

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"go.starlark.net/syntax"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultCondition is the select() key matched when no other key is.
	DefaultCondition = "//conditions:default"
	// NoMatchingPlatformTriples is the key for values whose configuration
	// matched none of the requested platforms.
	NoMatchingPlatformTriples = "selects.NO_MATCHING_PLATFORM_TRIPLES"

	indentUnit = "    "
)

// Formatter renders one value as a Starlark expression plus an optional
// trailing comment.
type Formatter[T any] func(v T) (expr, comment string)

// Quote returns s as a double-quoted Starlark string literal.
func Quote(s string) string {
	return syntax.Quote(s, false)
}

// String formats a string value as a quoted literal.
func String(v string) (string, string) {
	return Quote(v), ""
}

// WithProvenance formats the wrapped value with format and annotates it with
// the configurations it was declared under.
func WithProvenance[T any](format Formatter[T]) Formatter[WithOriginalConfigurations[T]] {
	return func(v WithOriginalConfigurations[T]) (string, string) {
		expr, comment := format(v.Value)
		if v.Original != nil {
			comment = strings.Join(v.Original, ", ")
		}
		return expr, comment
	}
}

// FormatList renders s at the given indentation depth. Lists without any
// configuration render as a plain list; otherwise the common values are
// concatenated with a select() over the configurations.
func FormatList[T any](s *SelectList[T], format Formatter[T], depth int) string {
	var b strings.Builder
	conditional := len(s.selects) > 0 || len(s.unmapped) > 0

	if len(s.common) > 0 || !conditional {
		writeList(&b, s.common, format, depth)
		if !conditional {
			return b.String()
		}
		b.WriteString(" + ")
	}

	openSelect(&b, len(s.unmapped) > 0)
	for _, cfg := range slices.Sorted(maps.Keys(s.selects)) {
		writeKey(&b, Quote(cfg), depth+1)
		writeList(&b, s.selects[cfg], format, depth+1)
		b.WriteString(",\n")
	}
	writeKey(&b, Quote(DefaultCondition), depth+1)
	b.WriteString("[],\n")
	if len(s.unmapped) > 0 {
		writeKey(&b, NoMatchingPlatformTriples, depth+1)
		writeList(&b, s.unmapped, format, depth+1)
		b.WriteString(",\n")
	}
	closeSelect(&b, depth)
	return b.String()
}

// FormatDict renders d at the given indentation depth. Each configuration
// branch of the select() carries the common entries merged with its own.
func FormatDict[T any](d *SelectDict[T], format Formatter[T], depth int) string {
	var b strings.Builder
	if len(d.selects) == 0 && len(d.unmapped) == 0 {
		writeDict(&b, d.common, format, depth)
		return b.String()
	}

	openSelect(&b, len(d.unmapped) > 0)
	for _, cfg := range slices.Sorted(maps.Keys(d.selects)) {
		merged := maps.Clone(d.common)
		maps.Copy(merged, d.selects[cfg])
		writeKey(&b, Quote(cfg), depth+1)
		writeDict(&b, merged, format, depth+1)
		b.WriteString(",\n")
	}
	writeKey(&b, Quote(DefaultCondition), depth+1)
	writeDict(&b, d.common, format, depth+1)
	b.WriteString(",\n")
	if len(d.unmapped) > 0 {
		writeKey(&b, NoMatchingPlatformTriples, depth+1)
		writeDict(&b, d.unmapped, format, depth+1)
		b.WriteString(",\n")
	}
	closeSelect(&b, depth)
	return b.String()
}

// Validate parses src as a Starlark file.
func Validate(filename, src string) error {
	if _, err := (&syntax.FileOptions{}).Parse(filename, src, syntax.RetainComments); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrRenderFailed, err), "generated starlark does not parse"), "file", filename)
	}
	return nil
}

func openSelect(b *strings.Builder, withUnmapped bool) {
	if withUnmapped {
		b.WriteString("selects.with_unmapped({\n")
		return
	}
	b.WriteString("select({\n")
}

func closeSelect(b *strings.Builder, depth int) {
	b.WriteString(indent(depth))
	b.WriteString("})")
}

func writeKey(b *strings.Builder, key string, depth int) {
	b.WriteString(indent(depth))
	b.WriteString(key)
	b.WriteString(": ")
}

func writeList[T any](b *strings.Builder, values []T, format Formatter[T], depth int) {
	if len(values) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for _, v := range values {
		b.WriteString(indent(depth + 1))
		writeValue(b, format, v)
	}
	b.WriteString(indent(depth))
	b.WriteString("]")
}

func writeDict[T any](b *strings.Builder, entries map[string]T, format Formatter[T], depth int) {
	if len(entries) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		writeKey(b, Quote(key), depth+1)
		writeValue(b, format, entries[key])
	}
	b.WriteString(indent(depth))
	b.WriteString("}")
}

func writeValue[T any](b *strings.Builder, format Formatter[T], v T) {
	expr, comment := format(v)
	b.WriteString(expr)
	b.WriteString(",")
	if comment != "" {
		b.WriteString("  # ")
		b.WriteString(comment)
	}
	b.WriteString("\n")
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}
