// Package graphio serializes package dependency graphs to JSON and back.
//
// This is the interchange format between depview commands: `depview
// inspect` writes it, `depview render` and `depview serve` read it. The
// format preserves orientation, neighbor order, and all per-package
// fields, so import -> export round-trips are lossless.
package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/depview/depview/pkg/pkggraph"
)

type graphDoc struct {
	Reversed bool       `json:"reversed,omitempty"`
	Packages []entryDoc `json:"packages"`
}

type entryDoc struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Missing bool     `json:"missing,omitempty"`
	Deps    []depDoc `json:"deps,omitempty"`
}

type depDoc struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Spec    string `json:"spec,omitempty"`
	Version string `json:"version,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// WriteJSON encodes g and writes it to w. Entries keep their graph order
// so the output is deterministic for a given graph.
func WriteJSON(g *pkggraph.PackageDAG, w io.Writer) error {
	doc := graphDoc{
		Reversed: g.IsReversed(),
		Packages: make([]entryDoc, 0, g.NodeCount()),
	}
	for _, e := range g.Items() {
		entry := entryDoc{
			Key:     e.Pkg.Key,
			Name:    e.Pkg.Name,
			Version: e.Pkg.Version,
			Missing: e.Pkg.Missing,
		}
		for _, d := range e.Deps {
			entry.Deps = append(entry.Deps, depDoc{
				Key:     d.Key,
				Name:    d.Name,
				Spec:    d.VersionSpec,
				Version: d.Version,
				Missing: d.Missing,
			})
		}
		doc.Packages = append(doc.Packages, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a graph written by [WriteJSON].
func ReadJSON(r io.Reader) (*pkggraph.PackageDAG, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := pkggraph.New()
	if doc.Reversed {
		g = pkggraph.NewReversed()
	}
	for _, entry := range doc.Packages {
		g.AddPackage(pkggraph.Package{
			Key:     entry.Key,
			Name:    entry.Name,
			Version: entry.Version,
			Missing: entry.Missing,
		})
		for _, d := range entry.Deps {
			g.AddDep(entry.Key, pkggraph.Dep{
				Key:         d.Key,
				Name:        d.Name,
				VersionSpec: d.Spec,
				Version:     d.Version,
				Missing:     d.Missing,
			})
		}
	}
	return g, nil
}

// ExportJSON writes a graph to a JSON file at path.
func ExportJSON(g *pkggraph.PackageDAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ImportJSON reads a graph from the JSON file at path.
func ImportJSON(path string) (*pkggraph.PackageDAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
