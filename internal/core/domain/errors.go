package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedTreeLine is returned when a cargo tree line does not have the expected shape.
	ErrMalformedTreeLine = zerr.New("unexpected line format")

	// ErrInvalidVersion is returned when a package version is missing its prefix or is not valid semver.
	ErrInvalidVersion = zerr.New("unexpected crate version")

	// ErrInvalidDepth is returned when the depth prefix of a cargo tree line is not a non-negative integer.
	ErrInvalidDepth = zerr.New("unexpected depth")

	// ErrInvalidPackageID is returned when a "name version" package identifier cannot be parsed.
	ErrInvalidPackageID = zerr.New("invalid package id")

	// ErrTreeQueryFailed is returned when a cargo tree process exits unsuccessfully.
	ErrTreeQueryFailed = zerr.New("failed to run cargo tree")

	// ErrTreeQueryTimeout is returned when a cargo tree process does not finish before its deadline.
	// It wraps ErrTreeQueryFailed so both sentinels match.
	ErrTreeQueryTimeout = zerr.Wrap(ErrTreeQueryFailed, "cargo tree timed out")

	// ErrNoPlatforms is returned when no target platforms are configured.
	ErrNoPlatforms = zerr.New("no supported platform triples configured")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file is found walking up from the working directory.
	ErrConfigNotFound = zerr.New("could not find crates.yaml")

	// ErrInvalidTimeout is returned when the configured query timeout cannot be parsed.
	ErrInvalidTimeout = zerr.New("invalid query timeout")

	// ErrManifestNotFound is returned when the configured Cargo manifest does not exist.
	ErrManifestNotFound = zerr.New("cargo manifest not found")

	// ErrCargoVersionFailed is returned when `cargo version` cannot be run.
	ErrCargoVersionFailed = zerr.New("failed to query cargo version")

	// ErrCargoVersionUnparseable is returned when the output of `cargo version` cannot be parsed.
	ErrCargoVersionUnparseable = zerr.New("unexpected cargo version output")

	// ErrMetadataReadFailed is returned when the metadata document cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read metadata")

	// ErrMetadataUnmarshalFailed is returned when the metadata document cannot be decoded.
	ErrMetadataUnmarshalFailed = zerr.New("failed to unmarshal metadata")

	// ErrMetadataMarshalFailed is returned when the metadata document cannot be encoded.
	ErrMetadataMarshalFailed = zerr.New("failed to marshal metadata")

	// ErrMetadataWriteFailed is returned when the metadata document cannot be written.
	ErrMetadataWriteFailed = zerr.New("failed to write metadata")

	// ErrManifestReadFailed is returned when Cargo.toml cannot be read for digest computation.
	ErrManifestReadFailed = zerr.New("failed to read Cargo.toml")

	// ErrLockfileReadFailed is returned when Cargo.lock cannot be read for digest computation.
	ErrLockfileReadFailed = zerr.New("failed to read Cargo.lock")

	// ErrRenderFailed is returned when rendered Starlark does not parse.
	ErrRenderFailed = zerr.New("rendered starlark is invalid")

	// ErrInvalidProgressMode is returned for an unknown --progress value.
	ErrInvalidProgressMode = zerr.New("invalid progress mode")

	// ErrRepinRequired is returned by the query command when the stored digest is stale.
	ErrRepinRequired = zerr.New("digests do not match, repin required")
)
