package pkggraph

import "strings"

// Package is one package in a dependency graph.
type Package struct {
	Key     string // normalized identity used for graph lookups
	Name    string // original-case project name
	Version string // installed version, empty when Missing
	Missing bool   // declared somewhere but not installed
}

// Dep is a directed reference from a graph entry to a neighbor package.
// In a forward graph the neighbor is a dependency of the entry; in a
// reversed graph it is a package that depends on the entry.
type Dep struct {
	Key         string
	Name        string
	VersionSpec string // declared constraint (e.g. ">=1.0"); empty accepts any version
	Version     string // installed version of the neighbor, when known
	Missing     bool
}

// Entry pairs a package with its direct neighbor list.
type Entry struct {
	Pkg  Package
	Deps []Dep
}

// PackageDAG is an ordered mapping from packages to their direct neighbors.
// The orientation (forward vs reversed) is a property of the graph
// instance, not of individual entries.
type PackageDAG struct {
	reversed bool
	order    []string
	entries  map[string]*Entry
}

// New creates an empty forward graph (entries map to their dependencies).
func New() *PackageDAG {
	return &PackageDAG{entries: make(map[string]*Entry)}
}

// NewReversed creates an empty reversed graph (entries map to the packages
// that depend on them).
func NewReversed() *PackageDAG {
	return &PackageDAG{reversed: true, entries: make(map[string]*Entry)}
}

// IsReversed reports the graph orientation.
func (g *PackageDAG) IsReversed() bool { return g.reversed }

// AddPackage inserts or updates a top-level entry. Existing neighbor lists
// are preserved when a key is added twice; the package fields of the later
// call win.
func (g *PackageDAG) AddPackage(p Package) {
	p.Key = NormalizeKey(p.Key)
	if e, ok := g.entries[p.Key]; ok {
		e.Pkg = p
		return
	}
	g.entries[p.Key] = &Entry{Pkg: p}
	g.order = append(g.order, p.Key)
}

// AddDep appends a neighbor to the entry identified by from. If from was
// never declared with [PackageDAG.AddPackage], a bare entry is created so
// that malformed input still produces a renderable graph.
func (g *PackageDAG) AddDep(from string, d Dep) {
	from = NormalizeKey(from)
	d.Key = NormalizeKey(d.Key)
	e, ok := g.entries[from]
	if !ok {
		e = &Entry{Pkg: Package{Key: from, Name: from}}
		g.entries[from] = e
		g.order = append(g.order, from)
	}
	e.Deps = append(e.Deps, d)
}

// Items returns the entries in insertion order. The returned slice is
// freshly allocated but shares Entry pointers with the graph; callers must
// not mutate them.
func (g *PackageDAG) Items() []*Entry {
	items := make([]*Entry, 0, len(g.order))
	for _, key := range g.order {
		items = append(items, g.entries[key])
	}
	return items
}

// Lookup returns the entry for key, if present.
func (g *PackageDAG) Lookup(key string) (*Entry, bool) {
	e, ok := g.entries[NormalizeKey(key)]
	return e, ok
}

// NodeCount returns the number of top-level entries.
func (g *PackageDAG) NodeCount() int { return len(g.order) }

// EdgeCount returns the total number of neighbor references.
func (g *PackageDAG) EdgeCount() int {
	n := 0
	for _, e := range g.entries {
		n += len(e.Deps)
	}
	return n
}

// NormalizeKey case-normalizes a package name for use as a graph key.
// Ecosystem-specific canonicalization (e.g. Python's folding of "_" and
// "." to "-") is applied by the manifest parsers before keys reach the
// graph.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
