package app

import (
	"strings"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/starlark"
)

// TreeMetadataVariable is the name bound by the rendered Starlark file.
const TreeMetadataVariable = "TREE_METADATA"

// RenderStarlark renders md as a Starlark assignment of a dict from package
// id to struct(crate_features, deps). Platform deltas are remapped through
// the configured platform labels. The result is parsed before it is returned.
func RenderStarlark(cfg *domain.Config, md domain.TreeMetadata) (string, error) {
	mapping := cfg.LabelMapping()

	var b strings.Builder
	b.WriteString(TreeMetadataVariable)
	b.WriteString(" = ")

	packages := md.Packages()
	if len(packages) == 0 {
		b.WriteString("{}")
	} else {
		b.WriteString("{\n")
		for _, id := range packages {
			features, deps := Selects(cfg.RepositoryName, md[id])

			b.WriteString("    ")
			b.WriteString(starlark.Quote(id.String()))
			b.WriteString(": struct(\n")
			writeField(&b, "crate_features", starlark.RemapList(features, mapping))
			writeField(&b, "deps", starlark.RemapList(deps, mapping))
			b.WriteString("    ),\n")
		}
		b.WriteString("}")
	}

	out := b.String()
	if err := starlark.Validate(TreeMetadataVariable+".bzl", out); err != nil {
		return "", err
	}
	return out, nil
}

// Selects converts one aggregated record into the feature and dependency
// lists, keyed by platform triple. Dependencies are rendered as labels in
// repository.
func Selects(repository string, sel domain.TreeSelect) (features, deps *starlark.SelectList[string]) {
	features = starlark.NewSelectList[string]()
	deps = starlark.NewSelectList[string]()

	add := func(entry domain.TreeEntry, configuration string) {
		for _, f := range entry.Features {
			features.Insert(f, configuration)
		}
		for _, d := range entry.Deps {
			deps.Insert(starlark.CrateLabel(repository, d), configuration)
		}
	}

	add(sel.Common, starlark.Common)
	for _, p := range sel.Platforms() {
		add(sel.Selects[p], p.String())
	}
	return features, deps
}

func writeField(b *strings.Builder, name string, values *starlark.SelectList[starlark.WithOriginalConfigurations[string]]) {
	b.WriteString("        ")
	b.WriteString(name)
	b.WriteString(" = ")
	b.WriteString(starlark.FormatList(values, starlark.WithProvenance(starlark.String), 2))
	b.WriteString(",\n")
}
