// Package app implements the application layer for crates.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/crates/internal/adapters/detector"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
	"go.trai.ch/crates/internal/engine/tree"
	"go.trai.ch/crates/internal/tui"
	"go.trai.ch/crates/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	toolchain    ports.Toolchain
	resolver     *tree.Resolver
	store        ports.MetadataStore
	hasher       ports.Hasher
	logger       ports.Logger
	out          io.Writer
	getwd        func() (string, error)
	progress     ProgressFeed
	progressOut  io.Writer
}

// ProgressModes lists the accepted values of TreeOptions.Progress.
var ProgressModes = []string{"auto", "tui", "plain"}

// ProgressFeed is the tape read by the progress view. It only records
// updates between Open and Pause.
type ProgressFeed interface {
	tui.TapeSource
	Open()
	Pause()
}

type logHolder interface {
	Hold() (release func())
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	toolchain ports.Toolchain,
	resolver *tree.Resolver,
	store ports.MetadataStore,
	hasher ports.Hasher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		toolchain:    toolchain,
		resolver:     resolver,
		store:        store,
		hasher:       hasher,
		logger:       log,
		out:          os.Stdout,
		getwd:        os.Getwd,
		progressOut:  os.Stderr,
	}
}

// WithProgress enables the live progress view fed by feed.
func (a *App) WithProgress(feed ProgressFeed) *App {
	a.progress = feed
	return a
}

// WithProgressOutput sets where the progress view draws, which defaults to stderr.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progressOut = w
	return a
}

// WithOutput redirects command output, which defaults to stdout.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkingDir makes config discovery start at dir instead of the process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// ConfigureLogging applies the logging flags.
func (a *App) ConfigureLogging(debug, json bool) {
	if debug {
		a.logger.SetDebug(true)
	}
	a.logger.SetJSON(json)
}

// TreeOptions configuration for the Tree method.
type TreeOptions struct {
	// ConfigPath is the crates.yaml to use. Empty means discover it.
	ConfigPath string
	// Starlark prints the rendered TREE_METADATA instead of a summary.
	Starlark bool
	// Parallelism limits concurrent cargo tree processes. Zero means unlimited.
	Parallelism int
	// Progress selects the progress view: "auto", "tui" or "plain".
	Progress string
}

// Tree resolves the dependency tree of every configured platform, writes the
// metadata document and prints either a summary or the rendered Starlark.
func (a *App) Tree(ctx context.Context, opts TreeOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	version, err := a.toolchain.FullVersion(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to determine cargo version")
	}
	a.logger.Debug("using " + version)

	stop := a.startProgress(ctx, opts.Progress)
	treeMetadata, err := a.resolver.Resolve(ctx, tree.Options{
		ManifestPath: cfg.ManifestPath,
		Platforms:    cfg.Platforms,
		Timeout:      cfg.QueryTimeout,
		Parallelism:  opts.Parallelism,
	})
	stop()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve dependency tree")
	}

	digest, err := a.hasher.ComputeDigest(cfg, version)
	if err != nil {
		return zerr.Wrap(err, "failed to compute digest")
	}

	md := &domain.Metadata{
		CargoVersion: version,
		Digest:       digest,
		TreeMetadata: treeMetadata,
	}
	if err := a.store.Save(cfg.MetadataPath(), md); err != nil {
		return err
	}
	a.logger.Debug("wrote " + cfg.MetadataPath())

	if opts.Starlark {
		rendered, err := RenderStarlark(cfg, treeMetadata)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(a.out, rendered)
		return nil
	}

	a.printSummary(cfg, treeMetadata)
	return nil
}

// QueryOptions configuration for the Query method.
type QueryOptions struct {
	ConfigPath string
}

// Query compares the stored digest with a freshly computed one. A missing or
// stale document yields domain.ErrRepinRequired.
func (a *App) Query(ctx context.Context, opts QueryOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	md, err := a.store.Load(cfg.MetadataPath())
	if err != nil {
		return err
	}
	if md == nil {
		return zerr.With(zerr.Wrap(domain.ErrRepinRequired, "no metadata found"), "path", cfg.MetadataPath())
	}

	version, err := a.toolchain.FullVersion(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to determine cargo version")
	}

	digest, err := a.hasher.ComputeDigest(cfg, version)
	if err != nil {
		return zerr.Wrap(err, "failed to compute digest")
	}

	if digest != md.Digest {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrRepinRequired, "metadata is stale"),
			"stored", md.Digest),
			"computed", digest)
	}

	_, _ = fmt.Fprintf(a.out, "%s %s %s\n", style.Check, "metadata is up to date", style.Muted(digest))
	return nil
}

func (a *App) startProgress(ctx context.Context, flag string) (stop func()) {
	if a.progress == nil || detector.ResolveMode(detector.DetectEnvironment(), flag) != detector.ModeTUI {
		return func() {}
	}

	release := func() {}
	if holder, ok := a.logger.(logHolder); ok {
		release = holder.Hold()
	}
	a.progress.Open()
	stopView := tui.Start(ctx, a.progress, a.progressOut)

	return func() {
		stopView()
		a.progress.Pause()
		release()
	}
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	if path == "" {
		cwd, err := a.getwd()
		if err != nil {
			return nil, zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to determine working directory")
		}
		path, err = a.configLoader.Discover(cwd)
		if err != nil {
			return nil, err
		}
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.toolchain.Configure(cfg)
	return cfg, nil
}

func (a *App) printSummary(cfg *domain.Config, md domain.TreeMetadata) {
	_, _ = fmt.Fprintf(a.out, "%s\n", style.Heading(fmt.Sprintf(
		"Resolved %d packages for %d platforms", len(md), len(cfg.Platforms))))

	width := 0
	for _, p := range cfg.Platforms {
		width = max(width, len(p.String()))
	}

	for _, p := range cfg.Platforms {
		specific := 0
		for _, sel := range md {
			if _, ok := sel.Selects[p]; ok {
				specific++
			}
		}
		_, _ = fmt.Fprintf(a.out, "  %s %s%s %s\n",
			style.Check, p, strings.Repeat(" ", width-len(p.String())),
			style.Muted(fmt.Sprintf("%d platform-specific", specific)))
	}
}
