// Package text renders a package dependency graph as an indented tree,
// the default human-readable output of depview.
package text

import (
	"fmt"
	"sort"
	"strings"

	"github.com/depview/depview/pkg/pkggraph"
)

// Options configures tree rendering.
type Options struct {
	// All lists every package at top level, not only the ones nothing
	// else depends on.
	All bool
	// Depth limits how many neighbor levels are expanded. Zero or
	// negative means unlimited.
	Depth int
}

// Render produces the indented dependency tree.
//
// Forward graphs render as
//
//	Flask==1.1.2
//	  - click [required: >=5.1, installed: 7.1.2]
//
// and reversed graphs as
//
//	click==7.1.2
//	  - Flask==1.1.2 [requires: click>=5.1]
//
// Missing dependencies show "installed: ?". Branches that revisit a
// package already on the current path are cut with "(cycle)" so cyclic
// graphs terminate.
func Render(g *pkggraph.PackageDAG, opts Options) string {
	roots := rootEntries(g, opts.All)

	var b strings.Builder
	for _, e := range roots {
		writeEntry(&b, g, e, opts)
	}
	return b.String()
}

// rootEntries picks the top-level lines of the tree: every entry when all
// is set, otherwise the entries no other entry points at. Roots are
// sorted by key so output is deterministic.
func rootEntries(g *pkggraph.PackageDAG, all bool) []*pkggraph.Entry {
	incoming := make(map[string]bool)
	if !all {
		for _, e := range g.Items() {
			for _, d := range e.Deps {
				if d.Key != e.Pkg.Key {
					incoming[d.Key] = true
				}
			}
		}
	}

	var roots []*pkggraph.Entry
	for _, e := range g.Items() {
		if all || !incoming[e.Pkg.Key] {
			roots = append(roots, e)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Pkg.Key < roots[j].Pkg.Key })
	return roots
}

func writeEntry(b *strings.Builder, g *pkggraph.PackageDAG, e *pkggraph.Entry, opts Options) {
	fmt.Fprintf(b, "%s==%s\n", e.Pkg.Name, versionOrMarker(e.Pkg.Version, e.Pkg.Missing))
	onPath := map[string]bool{e.Pkg.Key: true}
	writeDeps(b, g, e, 1, onPath, opts)
}

func writeDeps(b *strings.Builder, g *pkggraph.PackageDAG, e *pkggraph.Entry, level int, onPath map[string]bool, opts Options) {
	if opts.Depth > 0 && level > opts.Depth {
		return
	}
	indent := strings.Repeat("  ", level)

	for _, d := range e.Deps {
		if g.IsReversed() {
			fmt.Fprintf(b, "%s- %s==%s [requires: %s%s]", indent, d.Name, versionOrMarker(d.Version, false), e.Pkg.Name, d.VersionSpec)
		} else {
			fmt.Fprintf(b, "%s- %s [required: %s, installed: %s]", indent, d.Name, specOrAny(d.VersionSpec), versionOrMarker(d.Version, d.Missing))
		}

		if onPath[d.Key] {
			b.WriteString(" (cycle)\n")
			continue
		}
		b.WriteString("\n")

		if child, ok := g.Lookup(d.Key); ok {
			onPath[d.Key] = true
			writeDeps(b, g, child, level+1, onPath, opts)
			delete(onPath, d.Key)
		}
	}
}

func versionOrMarker(version string, missing bool) string {
	if missing || version == "" {
		return "?"
	}
	return version
}

func specOrAny(spec string) string {
	if spec == "" {
		return "Any"
	}
	return spec
}
