// Package pkg provides the core libraries for depview dependency inspection.
//
// # Overview
//
// depview parses lock files into package dependency graphs and renders
// them in several formats. The libraries are organized as:
//
//   - [pkggraph]: the dependency graph model (packages, requirement edges,
//     filtering, reversal, health checks)
//   - [manifest]: lock file parsers (poetry.lock, package-lock.json,
//     go mod graph output)
//   - [render]: output formats (text tree, JSON report, Mermaid, DOT,
//     SVG, PNG)
//   - [graphio]: graph snapshot import and export
//   - [registry]: package registry clients (PyPI, npm, Go module proxy)
//   - [cache]: response caching backends (file, Redis)
//   - [errors]: structured errors with stable codes
//
// # Typical Flow
//
// A manifest is detected and parsed into a graph, optionally filtered or
// reversed, then rendered:
//
//	parser, _ := manifest.Detect("poetry.lock", parsers...)
//	result, _ := parser.Parse("poetry.lock")
//	out, _ := render.Render(ctx, result.Graph, render.FormatMermaid, render.Options{})
//
// [pkggraph]: github.com/depview/depview/pkg/pkggraph
// [manifest]: github.com/depview/depview/pkg/manifest
// [render]: github.com/depview/depview/pkg/render
// [graphio]: github.com/depview/depview/pkg/graphio
// [registry]: github.com/depview/depview/pkg/registry
// [cache]: github.com/depview/depview/pkg/cache
// [errors]: github.com/depview/depview/pkg/errors
package pkg
