// Package mermaid renders a package dependency graph as a Mermaid
// flowchart.
//
// The output is a plain-text node/edge list in Mermaid's flowchart
// grammar, suitable for pasting into documentation or feeding to the
// mermaid renderer. Output is deterministic: node and edge declarations
// are deduplicated by their rendered text and emitted in lexicographic
// order, so a given graph always produces byte-identical text regardless
// of iteration order.
package mermaid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/depview/depview/pkg/pkggraph"
)

// reservedIDs are keywords in the Mermaid grammar that cannot be used as
// node identifiers.
// See: https://github.com/mermaid-js/mermaid/issues/4182#issuecomment-1454787806
var reservedIDs = map[string]struct{}{
	"C4Component":  {},
	"C4Container":  {},
	"C4Deployment": {},
	"C4Dynamic":    {},
	"_blank":       {},
	"_parent":      {},
	"_self":        {},
	"_top":         {},
	"call":         {},
	"class":        {},
	"classDef":     {},
	"click":        {},
	"end":          {},
	"flowchart":    {},
	"flowchart-v2": {},
	"graph":        {},
	"interpolate":  {},
	"linkStyle":    {},
	"style":        {},
	"subgraph":     {},
}

// idMap assigns collision-free Mermaid node identifiers within one render
// call. Once a key is assigned an identifier, every later encounter of
// the same key returns the same identifier.
type idMap struct {
	byKey  map[string]string   // input key -> assigned identifier
	issued map[string]struct{} // identifiers handed out so far
}

func newIDMap() *idMap {
	return &idMap{
		byKey:  make(map[string]string),
		issued: make(map[string]struct{}),
	}
}

// id returns a valid Mermaid node identifier for key. Non-reserved keys
// map to themselves; reserved keys probe key_0, key_1, ... until a
// candidate is found that has not been issued to another key.
func (m *idMap) id(key string) string {
	if id, ok := m.byKey[key]; ok {
		return id
	}
	if _, reserved := reservedIDs[key]; !reserved {
		m.byKey[key] = key
		m.issued[key] = struct{}{}
		return key
	}
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("%s_%d", key, n)
		if _, taken := m.issued[candidate]; !taken {
			m.byKey[key] = candidate
			m.issued[candidate] = struct{}{}
			return candidate
		}
	}
}

// Render produces a Mermaid flowchart from the dependency graph.
//
// In a forward graph each entry is rendered with its project name and
// installed version; missing dependencies get a dashed, unlabeled edge
// and a node tagged with the "missing" style class. In a reversed graph
// edges point from a package to its dependents, labeled with the version
// the dependent requires. An empty constraint renders as "any".
//
// Render never fails: unknown neighbor keys simply get a node declared at
// first encounter, and cyclic graphs are safe because only top-level
// entries and their direct neighbor lists are visited.
func Render(g *pkggraph.PackageDAG) string {
	ids := newIDMap()
	nodes := make(map[string]struct{})
	edges := make(map[string]struct{})

	if g.IsReversed() {
		for _, e := range g.Items() {
			version := e.Pkg.Version
			if e.Pkg.Missing {
				version = "(missing)"
			}
			pkgID := ids.id(e.Pkg.Key)
			nodes[fmt.Sprintf(`%s["%s\n%s"]`, pkgID, e.Pkg.Name, version)] = struct{}{}
			for _, dependent := range e.Deps {
				depID := ids.id(dependent.Key)
				edges[fmt.Sprintf(`%s -- "%s" --> %s`, pkgID, specOrAny(dependent.VersionSpec), depID)] = struct{}{}
			}
		}
	} else {
		for _, e := range g.Items() {
			pkgID := ids.id(e.Pkg.Key)
			nodes[fmt.Sprintf(`%s["%s\n%s"]`, pkgID, e.Pkg.Name, e.Pkg.Version)] = struct{}{}
			for _, dep := range e.Deps {
				depID := ids.id(dep.Key)
				if dep.Missing {
					// A missing dependency has no satisfiable version, so
					// the edge carries no label.
					nodes[fmt.Sprintf(`%s["%s\n(missing)"]:::missing`, depID, dep.Name)] = struct{}{}
					edges[fmt.Sprintf(`%s -.-> %s`, pkgID, depID)] = struct{}{}
				} else {
					edges[fmt.Sprintf(`%s -- "%s" --> %s`, pkgID, specOrAny(dep.VersionSpec), depID)] = struct{}{}
				}
			}
		}
	}

	const indent = "    "
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	b.WriteString(indent + "classDef missing stroke-dasharray: 5\n")
	for _, node := range sorted(nodes) {
		b.WriteString(indent + node + "\n")
	}
	for _, edge := range sorted(edges) {
		b.WriteString(indent + edge + "\n")
	}
	return b.String()
}

func specOrAny(spec string) string {
	if spec == "" {
		return "any"
	}
	return spec
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
