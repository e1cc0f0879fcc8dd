package starlark_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/starlark"
)

var remapping = map[string][]string{
	"cfg(macos)":  {"x86_64-macos", "aarch64-macos"},
	"cfg(x86_64)": {"x86_64-linux", "x86_64-macos"},
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		name       string
		build      func(l *starlark.SelectList[string])
		goldenName string
	}{
		{
			name:       "empty",
			build:      func(*starlark.SelectList[string]) {},
			goldenName: "list_empty",
		},
		{
			name: "common only",
			build: func(l *starlark.SelectList[string]) {
				l.Insert("Hello", starlark.Common)
			},
			goldenName: "list_common",
		},
		{
			name: "platform only",
			build: func(l *starlark.SelectList[string]) {
				l.Insert("Hello", "platform")
			},
			goldenName: "list_platform",
		},
		{
			name: "mixed",
			build: func(l *starlark.SelectList[string]) {
				l.Insert("Hello", "platform")
				l.Insert("Goodbye", starlark.Common)
			},
			goldenName: "list_mixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := starlark.NewSelectList[string]()
			tt.build(l)

			out := starlark.FormatList(l, starlark.String, 0)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(out+"\n"))
			require.NoError(t, starlark.Validate("list.bzl", "x = "+out))
		})
	}
}

func TestFormatDict(t *testing.T) {
	tests := []struct {
		name       string
		build      func(d *starlark.SelectDict[string])
		goldenName string
	}{
		{
			name:       "empty",
			build:      func(*starlark.SelectDict[string]) {},
			goldenName: "dict_empty",
		},
		{
			name: "common only",
			build: func(d *starlark.SelectDict[string]) {
				d.Insert("Greeting", "Hello", starlark.Common)
			},
			goldenName: "dict_common",
		},
		{
			name: "platform only",
			build: func(d *starlark.SelectDict[string]) {
				d.Insert("Greeting", "Hello", "platform")
			},
			goldenName: "dict_platform",
		},
		{
			name: "mixed",
			build: func(d *starlark.SelectDict[string]) {
				d.Insert("Greeting", "Hello", "platform")
				d.Insert("Message", "Goodbye", starlark.Common)
			},
			goldenName: "dict_mixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := starlark.NewSelectDict[string]()
			tt.build(d)

			out := starlark.FormatDict(d, starlark.String, 0)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(out+"\n"))
			require.NoError(t, starlark.Validate("dict.bzl", "x = "+out))
		})
	}
}

func TestFormatList_Remapped(t *testing.T) {
	l := starlark.NewSelectList[string]()
	l.Insert("dep-a", "cfg(macos)")
	l.Insert("dep-b", "cfg(macos)")
	l.Insert("dep-d", "cfg(macos)")
	l.Insert("dep-a", "cfg(x86_64)")
	l.Insert("dep-c", "cfg(x86_64)")
	l.Insert("dep-e", "cfg(pdp11)")
	l.Insert("dep-d", starlark.Common)
	l.Insert("dep-f", "@platforms//os:magic")
	l.Insert("dep-g", "//another:platform")

	remapped := starlark.RemapList(l, remapping)
	out := starlark.FormatList(remapped, starlark.WithProvenance(starlark.String), 0)

	g := goldie.New(t)
	g.Assert(t, "list_remapped", []byte(out+"\n"))
	require.NoError(t, starlark.Validate("list.bzl", "x = "+out))
}

func TestFormatDict_Remapped(t *testing.T) {
	d := starlark.NewSelectDict[string]()
	d.Insert("dep-a", "a", "cfg(macos)")
	d.Insert("dep-b", "b", "cfg(macos)")
	d.Insert("dep-d", "d", "cfg(macos)")
	d.Insert("dep-a", "a", "cfg(x86_64)")
	d.Insert("dep-c", "c", "cfg(x86_64)")
	d.Insert("dep-e", "e", "cfg(pdp11)")
	d.Insert("dep-d", "d", starlark.Common)
	d.Insert("dep-f", "f", "@platforms//os:magic")
	d.Insert("dep-g", "g", "//another:platform")

	remapped := starlark.RemapDict(d, remapping)
	out := starlark.FormatDict(remapped, starlark.WithProvenance(starlark.String), 0)

	g := goldie.New(t)
	g.Assert(t, "dict_remapped", []byte(out+"\n"))
	require.NoError(t, starlark.Validate("dict.bzl", "x = "+out))
}

func TestFormatList_NestedDepth(t *testing.T) {
	l := starlark.NewSelectList[string]()
	l.Insert("std", starlark.Common)
	l.Insert("mio", "x86_64-unknown-linux-gnu")

	out := starlark.FormatList(l, starlark.String, 1)

	want := "[\n" +
		"        \"std\",\n" +
		"    ] + select({\n" +
		"        \"x86_64-unknown-linux-gnu\": [\n" +
		"            \"mio\",\n" +
		"        ],\n" +
		"        \"//conditions:default\": [],\n" +
		"    })"
	assert.Equal(t, want, out)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, starlark.Quote("plain"))
	assert.Equal(t, `"say \"hi\""`, starlark.Quote(`say "hi"`))
	assert.Equal(t, `"a\nb"`, starlark.Quote("a\nb"))
}

func TestValidate_Error(t *testing.T) {
	err := starlark.Validate("broken.bzl", "x = select({")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	assert.Contains(t, err.Error(), "broken.bzl")
}
