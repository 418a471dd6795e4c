// Package cli implements the depview command-line interface.
//
// This package provides commands for inspecting dependency graphs parsed
// from lock files, rendering them in several formats (text tree, JSON,
// Mermaid flowchart, Graphviz DOT, SVG, PNG), checking for newer
// releases on package registries, and serving a browser preview. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - inspect: Parse a manifest and report cycles, conflicts, and missing deps
//   - render: Generate text, JSON, Mermaid, DOT, SVG, or PNG output
//   - latest: Compare installed versions against registry releases
//   - serve: Serve an interactive Mermaid preview over HTTP
//   - cache: Manage the registry response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/depview/depview/pkg/cache"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/manifest/golang"
	"github.com/depview/depview/pkg/manifest/javascript"
	"github.com/depview/depview/pkg/manifest/python"
)

// appName is the application name used for directories and display.
const appName = "depview"

// parsers returns every supported manifest parser, in detection order.
func parsers() []manifest.Parser {
	return []manifest.Parser{
		&python.PoetryLock{},
		&javascript.PackageLock{},
		&golang.ModGraph{},
	}
}

// newCacheBackend builds the cache backend selected by configuration.
// Failures to set up the file cache degrade to a null cache so commands
// keep working without caching.
func newCacheBackend(ctx context.Context, cfg *Config) (cache.Cache, error) {
	if cfg.NoCache {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/depview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
