// Package javascript parses npm lock files into dependency graphs.
package javascript

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/pkggraph"
)

// PackageLock parses package-lock.json files (lockfile version 2 or 3).
// The lockfile's packages map holds the full installed tree with pinned
// versions, keyed by install path.
type PackageLock struct{}

func (p *PackageLock) Type() string              { return "package-lock.json" }
func (p *PackageLock) Supports(name string) bool { return name == "package-lock.json" }

func (p *PackageLock) Parse(path string) (*manifest.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "malformed package-lock.json")
	}
	if len(lock.Packages) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "lockfile version %d has no packages map (npm 7+ required)", lock.LockfileVersion)
	}

	return &manifest.Result{
		Graph:       buildGraph(lock),
		Type:        p.Type(),
		RootPackage: lock.Name,
	}, nil
}

type lockFile struct {
	Name            string               `json:"name"`
	LockfileVersion int                  `json:"lockfileVersion"`
	Packages        map[string]lockEntry `json:"packages"`
}

type lockEntry struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
	Dev          bool              `json:"dev"`
	Link         bool              `json:"link"`
}

func buildGraph(lock lockFile) *pkggraph.PackageDAG {
	g := pkggraph.New()

	// First pass: register every installed package. Nested installs
	// (a/node_modules/b under node_modules/a) collapse onto one node per
	// name; the shallowest path wins, matching what npm ls reports at
	// the top level.
	paths := make([]string, 0, len(lock.Packages))
	for p := range lock.Packages {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		di, dj := strings.Count(paths[i], "/"), strings.Count(paths[j], "/")
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})

	installed := make(map[string]lockEntry)
	winner := make(map[string]string) // key -> path whose entry represents it
	for _, p := range paths {
		entry := lock.Packages[p]
		if entry.Link {
			continue
		}
		name := nameFromPath(p, entry, lock)
		if name == "" {
			continue
		}
		key := pkggraph.NormalizeKey(name)
		if _, seen := installed[key]; seen {
			continue
		}
		installed[key] = entry
		winner[key] = p
		g.AddPackage(pkggraph.Package{Key: key, Name: name, Version: entry.Version})
	}

	for _, p := range paths {
		entry := lock.Packages[p]
		if entry.Link {
			continue
		}
		name := nameFromPath(p, entry, lock)
		if name == "" {
			continue
		}
		from := pkggraph.NormalizeKey(name)
		if winner[from] != p {
			continue // shadowed nested install, the winner provides the edges
		}
		for _, dep := range sortedDeps(entry.Dependencies) {
			key := pkggraph.NormalizeKey(dep)
			spec := entry.Dependencies[dep]
			if target, ok := installed[key]; ok {
				g.AddDep(from, pkggraph.Dep{
					Key:         key,
					Name:        dep,
					VersionSpec: spec,
					Version:     target.Version,
				})
			} else {
				g.AddDep(from, pkggraph.Dep{
					Key:         key,
					Name:        dep,
					VersionSpec: spec,
					Missing:     true,
				})
			}
		}
	}
	return g
}

// nameFromPath derives the package name from its install path. Entries
// live under node_modules/<name> (possibly nested, possibly scoped with
// an @scope/ prefix); the root project is keyed by "".
func nameFromPath(path string, entry lockEntry, lock lockFile) string {
	if path == "" {
		if lock.Name != "" {
			return lock.Name
		}
		return entry.Name
	}
	const marker = "node_modules/"
	idx := strings.LastIndex(path, marker)
	if idx < 0 {
		return entry.Name // workspace entry keyed by directory
	}
	return path[idx+len(marker):]
}

func sortedDeps(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
