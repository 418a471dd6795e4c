// Package pkggraph provides the package dependency graph that all depview
// renderers and analyses operate on.
//
// # Overview
//
// A [PackageDAG] maps each [Package] to an ordered list of [Dep] neighbors.
// The same structure serves two orientations, selected per graph instance:
//
//   - forward: neighbors are the packages an entry depends on
//   - reversed: neighbors are the packages that depend on the entry
//
// Manifest parsers build forward graphs; [PackageDAG.Reverse] derives the
// reversed view. Despite the name, the structure tolerates cycles and
// duplicate paths - consumers iterate top-level entries and their direct
// neighbor lists only, never recursively, so malformed input cannot cause
// unbounded traversal.
//
// # Basic Usage
//
//	g := pkggraph.New()
//	g.AddPackage(pkggraph.Package{Key: "requests", Name: "requests", Version: "2.28.1"})
//	g.AddPackage(pkggraph.Package{Key: "certifi", Name: "certifi", Version: "2022.6.15"})
//	g.AddDep("requests", pkggraph.Dep{Key: "certifi", Name: "certifi", VersionSpec: ">=2017.4.17"})
//
// Iterate with [PackageDAG.Items]; iteration follows insertion order, which
// manifest parsers keep deterministic.
//
// # Analyses
//
// The package also hosts graph-level checks that commands surface as
// warnings: [PackageDAG.Conflicts] (installed version violates a declared
// constraint), [PackageDAG.MissingDeps] (declared but not installed), and
// [PackageDAG.Cycles].
//
// # Concurrency
//
// A PackageDAG is not safe for concurrent mutation. Once built it is
// effectively immutable and may be shared freely across goroutines;
// renderers never modify the graph they are given.
package pkggraph
