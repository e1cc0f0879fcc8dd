package starlark

import (
	"strings"

	"go.trai.ch/crates/internal/core/domain"
)

// SanitizeModuleName converts a crate name into a valid Starlark identifier fragment.
func SanitizeModuleName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// SanitizeRepositoryName replaces characters that may appear in crate
// versions but are not valid in Bazel repository names.
func SanitizeRepositoryName(name string) string {
	return strings.ReplaceAll(name, "+", "-")
}

// CrateLabel returns the label of the target generated for id inside repository.
func CrateLabel(repository string, id domain.PackageID) string {
	return "@" + SanitizeRepositoryName(repository) + "//:" +
		SanitizeRepositoryName(id.Name+"-"+id.Version.Original())
}
