// Package golang parses go mod graph output into dependency graphs.
package golang

import (
	"bufio"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/pkggraph"
)

// ModGraph parses the output of `go mod graph` saved to a file. Each line
// is "module@version required@version"; the main module appears without a
// version. The requirement graph lists every version each module asks for,
// while the build uses only the highest one (minimal version selection),
// so the parser resolves each module path to its selected version and
// keeps the required version as the constraint.
type ModGraph struct{}

func (p *ModGraph) Type() string { return "go.modgraph" }

func (p *ModGraph) Supports(name string) bool {
	return name == "go.modgraph" || strings.HasSuffix(name, ".modgraph")
}

func (p *ModGraph) Parse(path string) (*manifest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type edge struct {
		from, fromVer, to, required string
	}
	var (
		edges    []edge
		root     string
		selected = make(map[string]string)
	)

	pick := func(mod, version string) {
		cur, ok := selected[mod]
		if !ok || newerVersion(version, cur) {
			selected[mod] = version
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "malformed go mod graph line: %q", line)
		}
		fromMod, fromVer := splitModVersion(fields[0])
		toMod, toVer := splitModVersion(fields[1])

		if fromVer == "" && root == "" {
			root = fromMod
		}
		pick(fromMod, fromVer)
		pick(toMod, toVer)
		edges = append(edges, edge{from: fromMod, fromVer: fromVer, to: toMod, required: toVer})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "empty go mod graph output")
	}

	g := pkggraph.New()
	ensure := func(mod string) string {
		key := pkggraph.NormalizeKey(mod)
		if _, ok := g.Lookup(key); !ok {
			g.AddPackage(pkggraph.Package{Key: key, Name: mod, Version: selected[mod]})
		}
		return key
	}
	for _, e := range edges {
		// Only the selected version of a module contributes requirement
		// edges; older versions in the graph are superseded.
		if e.fromVer != selected[e.from] {
			ensure(e.from)
			ensure(e.to)
			continue
		}
		key := ensure(e.from)
		toKey := ensure(e.to)
		g.AddDep(key, pkggraph.Dep{
			Key:         toKey,
			Name:        e.to,
			VersionSpec: e.required,
			Version:     selected[e.to],
		})
	}

	return &manifest.Result{Graph: g, Type: p.Type(), RootPackage: root}, nil
}

func splitModVersion(s string) (mod, version string) {
	if idx := strings.LastIndex(s, "@"); idx >= 0 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}

// newerVersion reports whether a sorts after b under semver ordering,
// falling back to string comparison for versions semver cannot parse.
func newerVersion(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return a > b
	}
	return va.GreaterThan(vb)
}
