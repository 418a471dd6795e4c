// Package dot renders a package dependency graph as Graphviz DOT and,
// via the graphviz library, as SVG or PNG.
package dot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/depview/depview/pkg/pkggraph"
)

// ToDOT converts a dependency graph to Graphviz DOT format. The result
// can be rendered with [RenderSVG] or [RenderPNG], or fed to any dot(1)
// compatible tool.
//
// Nodes are labeled "name\nversion"; missing packages get a dashed
// outline and grey fill. Edges carry the declared constraint ("any" when
// unconstrained); edges to missing dependencies are dashed and unlabeled.
func ToDOT(g *pkggraph.PackageDAG) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	declared := make(map[string]bool)
	declare := func(key, name, version string, missing bool) {
		if declared[key] {
			return
		}
		declared[key] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", key, nodeAttrs(name, version, missing))
	}

	for _, e := range g.Items() {
		declare(e.Pkg.Key, e.Pkg.Name, e.Pkg.Version, e.Pkg.Missing)
	}
	for _, e := range g.Items() {
		for _, d := range e.Deps {
			declare(d.Key, d.Name, d.Version, d.Missing)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Items() {
		for _, d := range e.Deps {
			if d.Missing {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.Pkg.Key, d.Key)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Pkg.Key, d.Key, specOrAny(d.VersionSpec))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(name, version string, missing bool) string {
	if missing {
		return fmt.Sprintf("label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey", name+"\n(missing)")
	}
	return fmt.Sprintf("label=%q", name+"\n"+version)
}

func specOrAny(spec string) string {
	if spec == "" {
		return "any"
	}
	return spec
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
