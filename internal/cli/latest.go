package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/depview/depview/pkg/cache"
	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/registry/goproxy"
	"github.com/depview/depview/pkg/registry/npm"
	"github.com/depview/depview/pkg/registry/pypi"
)

// latestOpts holds the command-line flags for the latest command.
type latestOpts struct {
	refresh      bool // bypass the response cache
	outdatedOnly bool // only list packages with a newer release
}

// newLatestCmd creates the latest command. It looks up every package of a
// lock file on its registry (PyPI, npm, or the Go module proxy) and
// reports which ones have newer releases.
func newLatestCmd(cfg *Config) *cobra.Command {
	opts := latestOpts{}

	cmd := &cobra.Command{
		Use:   "latest [manifest]",
		Short: "Check packages for newer registry releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLatest(cmd.Context(), cfg, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&opts.outdatedOnly, "outdated", false, "only list outdated packages")

	return cmd
}

// fetchLatest abstracts the per-ecosystem registry clients down to the
// one lookup the latest command needs.
type fetchLatest func(ctx context.Context, pkg string, refresh bool) (string, error)

// newLatestBackend builds the cache backend for registry lookups. It is a
// variable so tests can substitute a backend.
var newLatestBackend = newCacheBackend

// registryFor picks the registry client for a manifest type. The caller
// owns the backend and closes it when the lookups are done.
func registryFor(backend cache.Cache, cfg *Config, manifestType string) (fetchLatest, error) {
	switch manifestType {
	case "poetry.lock":
		client := pypi.NewClient(backend, cfg.CacheTTL)
		return func(ctx context.Context, pkg string, refresh bool) (string, error) {
			info, err := client.FetchLatest(ctx, pkg, refresh)
			if err != nil {
				return "", err
			}
			return info.Version, nil
		}, nil
	case "package-lock.json":
		client := npm.NewClient(backend, cfg.CacheTTL)
		return func(ctx context.Context, pkg string, refresh bool) (string, error) {
			info, err := client.FetchLatest(ctx, pkg, refresh)
			if err != nil {
				return "", err
			}
			return info.Version, nil
		}, nil
	case "go.modgraph":
		client := goproxy.NewClient(backend, cfg.CacheTTL)
		return func(ctx context.Context, pkg string, refresh bool) (string, error) {
			info, err := client.FetchLatest(ctx, pkg, refresh)
			if err != nil {
				return "", err
			}
			return info.Version, nil
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "no registry for manifest type %s", manifestType)
	}
}

func runLatest(ctx context.Context, cfg *Config, input string, opts *latestOpts) error {
	logger := loggerFromContext(ctx)

	parser, err := manifest.Detect(input, parsers()...)
	if err != nil {
		return err
	}
	result, err := parser.Parse(input)
	if err != nil {
		return err
	}
	g := result.Graph

	backend, err := newLatestBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	fetch, err := registryFor(backend, cfg, parser.Type())
	if err != nil {
		return err
	}

	entries := g.Items()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d packages", len(entries)))
	spinner.Start()

	type row struct {
		name, installed, latest string
		outdated                bool
	}
	var (
		rows     []row
		failures int
	)
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if e.Pkg.Missing || e.Pkg.Version == "" {
			continue
		}
		latest, err := fetch(ctx, e.Pkg.Name, opts.refresh)
		if err != nil {
			logger.Debugf("lookup failed: %s: %v", e.Pkg.Name, err)
			failures++
			continue
		}
		rows = append(rows, row{
			name:      e.Pkg.Name,
			installed: e.Pkg.Version,
			latest:    latest,
			outdated:  isOutdated(e.Pkg.Version, latest),
		})
	}

	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if len(rows) == 0 && failures > 0 {
		spinner.StopWithError(fmt.Sprintf("All %d registry lookups failed", failures))
		return errors.New(errors.ErrCodeNetwork, "no registry lookups succeeded")
	}
	spinner.StopWithSuccess(fmt.Sprintf("Checked %d packages", len(rows)))

	outdated := 0
	nameWidth := 0
	for _, r := range rows {
		if r.outdated {
			outdated++
		}
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	for _, r := range rows {
		if opts.outdatedOnly && !r.outdated {
			continue
		}
		padded := r.name + strings.Repeat(" ", nameWidth-len(r.name))
		if r.outdated {
			fmt.Printf("%s  %s %s %s\n",
				StyleValue.Render(padded),
				StyleDim.Render(r.installed),
				StyleDim.Render(iconArrow),
				styleOutdated.Render(r.latest))
		} else {
			fmt.Printf("%s  %s\n", StyleValue.Render(padded), styleCurrent.Render(r.installed))
		}
	}

	printNewlineAndSummary(len(rows), outdated, failures)
	return nil
}

func printNewlineAndSummary(checked, outdated, failures int) {
	fmt.Println()
	if outdated == 0 {
		printSuccess("All %d packages are up to date", checked)
	} else {
		printWarning("%d of %d packages have newer releases", outdated, checked)
	}
	if failures > 0 {
		printDetail("%d lookups failed (run with -v for details)", failures)
	}
}

// isOutdated compares an installed version against the latest release.
// Versions that do not parse as semver fall back to inequality so odd
// schemes still surface a difference.
func isOutdated(installed, latest string) bool {
	vi, errI := semver.NewVersion(installed)
	vl, errL := semver.NewVersion(latest)
	if errI != nil || errL != nil {
		return installed != latest
	}
	return vl.GreaterThan(vi)
}
