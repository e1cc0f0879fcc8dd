package tree

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver queries the dependency tree once per platform and aggregates the
// results into common and per-platform records.
type Resolver struct {
	querier   ports.TreeQuerier
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewResolver creates a new Resolver.
func NewResolver(querier ports.TreeQuerier, logger ports.Logger, telemetry ports.Telemetry) *Resolver {
	return &Resolver{
		querier:   querier,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Options configures a single resolution run.
type Options struct {
	ManifestPath string
	Platforms    []domain.Platform
	// Timeout bounds each platform query. Zero means domain.DefaultQueryTimeout.
	Timeout time.Duration
	// Parallelism limits concurrent queries. Zero runs every platform at once.
	Parallelism int
}

// Resolve runs every platform query concurrently and merges the results.
// Any failing platform fails the whole run and no partial result is returned.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (domain.TreeMetadata, error) {
	platforms := domain.UniquePlatforms(opts.Platforms)
	if len(platforms) == 0 {
		return nil, domain.ErrNoPlatforms
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultQueryTimeout
	}

	results := make([]map[domain.PackageID]domain.TreeEntry, len(platforms))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}

	for i, platform := range platforms {
		g.Go(func() error {
			entries, err := r.resolvePlatform(gctx, opts.ManifestPath, platform, timeout)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Aggregate(platforms, results), nil
}

func (r *Resolver) resolvePlatform(
	ctx context.Context,
	manifestPath string,
	platform domain.Platform,
	timeout time.Duration,
) (map[domain.PackageID]domain.TreeEntry, error) {
	ctx, vertex := r.telemetry.Record(ctx, "cargo tree --target "+platform.String())

	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Debug("spawning cargo tree for " + platform.String())

	out, err := r.querier.QueryTree(qctx, manifestPath, platform)
	if err != nil {
		if errors.Is(qctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = zerr.With(zerr.Wrap(domain.ErrTreeQueryTimeout, "after "+timeout.String()), "cause", err.Error())
		}
		vertex.Complete(err)
		return nil, zerr.With(zerr.With(
			zerr.Wrap(err, "failed to compute features for target "+platform.String()),
			"platform", platform.String()),
			"manifest", manifestPath)
	}

	r.logger.Debug("process complete for " + platform.String())

	entries, err := Reduce(out)
	if err != nil {
		vertex.Complete(err)
		return nil, zerr.With(err, "platform", platform.String())
	}

	for _, id := range sortedIDs(entries) {
		e := entries[id]
		r.logger.Debug(fmt.Sprintf("%s on %s: features=[%s] deps=[%s]",
			id, platform, strings.Join(e.Features, ","), joinIDs(e.Deps)))
	}

	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("resolved %d packages", len(entries)))
	vertex.Complete(nil)
	return entries, nil
}

// Aggregate merges per-platform records. results[i] belongs to platforms[i].
// For each package, common is the intersection over the platforms where the
// package appears, and every platform keeps only its non-empty delta.
func Aggregate(platforms []domain.Platform, results []map[domain.PackageID]domain.TreeEntry) domain.TreeMetadata {
	type observation struct {
		platform domain.Platform
		entry    domain.TreeEntry
	}

	byPackage := make(map[domain.PackageID][]observation)
	for i, platform := range platforms {
		for _, id := range sortedIDs(results[i]) {
			byPackage[id] = append(byPackage[id], observation{platform: platform, entry: results[i][id]})
		}
	}

	md := make(domain.TreeMetadata, len(byPackage))
	for id, observations := range byPackage {
		common := observations[0].entry
		for _, o := range observations[1:] {
			common = intersectEntries(common, o.entry)
		}

		sel := domain.TreeSelect{
			Selects: make(map[domain.Platform]domain.TreeEntry),
		}
		for _, o := range observations {
			delta := subtractEntries(o.entry, common)
			if !delta.IsEmpty() {
				sel.Selects[o.platform] = delta
			}
		}
		if !common.IsEmpty() {
			sel.Common = common
		}
		md[id] = sel
	}

	return md
}

func sortedIDs(m map[domain.PackageID]domain.TreeEntry) []domain.PackageID {
	return slices.SortedFunc(maps.Keys(m), domain.ComparePackageIDs)
}

func joinIDs(ids []domain.PackageID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
