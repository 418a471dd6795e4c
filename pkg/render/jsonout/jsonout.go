// Package jsonout renders a package dependency graph as a JSON report
// for machine consumption.
package jsonout

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/depview/depview/pkg/pkggraph"
)

// Report is the envelope around the flattened graph. ID and GeneratedAt
// identify one report instance; the Packages list itself is fully
// deterministic for a given graph.
type Report struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Reversed    bool          `json:"reversed"`
	Packages    []PackageItem `json:"packages"`
}

// PackageItem is one top-level graph entry with its direct neighbors.
type PackageItem struct {
	Key              string    `json:"key"`
	PackageName      string    `json:"package_name"`
	InstalledVersion string    `json:"installed_version,omitempty"`
	Missing          bool      `json:"missing,omitempty"`
	Dependencies     []DepItem `json:"dependencies"`
}

// DepItem is one neighbor reference.
type DepItem struct {
	Key              string `json:"key"`
	PackageName      string `json:"package_name"`
	InstalledVersion string `json:"installed_version,omitempty"`
	RequiredVersion  string `json:"required_version"`
	Missing          bool   `json:"missing,omitempty"`
}

// Build flattens g into a Report with a fresh report ID. Entries are
// sorted by key; neighbor lists keep their graph order.
func Build(g *pkggraph.PackageDAG) Report {
	items := make([]PackageItem, 0, g.NodeCount())
	for _, e := range g.Items() {
		item := PackageItem{
			Key:              e.Pkg.Key,
			PackageName:      e.Pkg.Name,
			InstalledVersion: e.Pkg.Version,
			Missing:          e.Pkg.Missing,
			Dependencies:     make([]DepItem, 0, len(e.Deps)),
		}
		for _, d := range e.Deps {
			item.Dependencies = append(item.Dependencies, DepItem{
				Key:              d.Key,
				PackageName:      d.Name,
				InstalledVersion: d.Version,
				RequiredVersion:  requiredVersion(d.VersionSpec),
				Missing:          d.Missing,
			})
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })

	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Reversed:    g.IsReversed(),
		Packages:    items,
	}
}

// Write renders g as indented JSON to w.
func Write(g *pkggraph.PackageDAG, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Build(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func requiredVersion(spec string) string {
	if spec == "" {
		return "any"
	}
	return spec
}
