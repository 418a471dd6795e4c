// Package python parses Python lock files into dependency graphs.
package python

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/pkggraph"
)

// PoetryLock parses poetry.lock files. The lock contains the full
// transitive closure with pinned versions and per-dependency constraints,
// so no registry access is needed.
type PoetryLock struct{}

func (p *PoetryLock) Type() string              { return "poetry.lock" }
func (p *PoetryLock) Supports(name string) bool { return name == "poetry.lock" }

func (p *PoetryLock) Parse(path string) (*manifest.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	return &manifest.Result{
		Graph:       buildGraph(lock.Packages),
		Type:        p.Type(),
		RootPackage: extractPyprojectName(filepath.Dir(path)),
	}, nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string         `toml:"name"`
	Version      string         `toml:"version"`
	Dependencies map[string]any `toml:"dependencies"`
}

func buildGraph(packages []lockPackage) *pkggraph.PackageDAG {
	g := pkggraph.New()

	installed := make(map[string]lockPackage, len(packages))
	for _, pkg := range packages {
		key := normalize(pkg.Name)
		installed[key] = pkg
		g.AddPackage(pkggraph.Package{Key: key, Name: pkg.Name, Version: pkg.Version})
	}

	for _, pkg := range packages {
		from := normalize(pkg.Name)
		for _, dep := range sortedKeys(pkg.Dependencies) {
			key := normalize(dep)
			spec := constraintString(pkg.Dependencies[dep])
			if target, ok := installed[key]; ok {
				g.AddDep(from, pkggraph.Dep{
					Key:         key,
					Name:        target.Name,
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

// constraintString extracts the version constraint from a poetry.lock
// dependency value, which is either a bare string ("^1.26.0") or a table
// with a version field ({version = ">=4.0", markers = "..."}). Poetry's
// "*" means any version, which depview models as an empty constraint.
func constraintString(v any) string {
	var spec string
	switch val := v.(type) {
	case string:
		spec = val
	case map[string]any:
		spec, _ = val["version"].(string)
	}
	if spec == "*" {
		return ""
	}
	return spec
}

// sortedKeys returns map keys in stable order; TOML tables have no
// inherent order and graph construction must be deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func extractPyprojectName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return ""
	}
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Name string `toml:"name"`
			} `toml:"poetry"`
		} `toml:"tool"`
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return ""
	}
	if pyproject.Tool.Poetry.Name != "" {
		return pyproject.Tool.Poetry.Name
	}
	return pyproject.Project.Name
}

// normalize applies PEP 503 name canonicalization: lowercase with runs
// of "-", "_" and "." folded to a single "-".
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	prevDash := false
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' {
			if !prevDash {
				b.WriteByte('-')
			}
			prevDash = true
			continue
		}
		prevDash = false
		b.WriteRune(r)
	}
	return b.String()
}
