package pkggraph

import (
	"path"
	"strings"

	"github.com/depview/depview/pkg/errors"
)

// Filter returns a forward sub-graph restricted to the packages matching
// the include patterns (all packages when include is empty), minus those
// matching exclude, closed downward over the surviving entries' dependency
// lists. Patterns use shell wildcards ("django-*") and are matched against
// normalized keys.
//
// A literal include pattern that matches nothing is reported as an error;
// silently rendering an empty graph hides typos. Wildcard patterns may
// legitimately match nothing.
func (g *PackageDAG) Filter(include, exclude []string) (*PackageDAG, error) {
	if g.reversed {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "filter requires a forward graph; filter before reversing")
	}

	excluded := func(key string) bool {
		return matchAny(exclude, key)
	}

	var roots []string
	if len(include) == 0 {
		for _, e := range g.Items() {
			if !excluded(e.Pkg.Key) {
				roots = append(roots, e.Pkg.Key)
			}
		}
	} else {
		matched := make(map[string]bool, len(include))
		for _, e := range g.Items() {
			if excluded(e.Pkg.Key) {
				continue
			}
			for _, pat := range include {
				if match(pat, e.Pkg.Key) {
					matched[pat] = true
					roots = append(roots, e.Pkg.Key)
					break
				}
			}
		}
		for _, pat := range include {
			if !matched[pat] && !strings.ContainsAny(pat, "*?[") {
				return nil, errors.New(errors.ErrCodePackageNotFound, "package %q not found in graph", pat)
			}
		}
	}

	sub := New()
	seen := make(map[string]bool)
	queue := roots
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if seen[key] {
			continue
		}
		seen[key] = true

		e, ok := g.entries[key]
		if !ok {
			continue
		}
		sub.AddPackage(e.Pkg)
		for _, d := range e.Deps {
			if excluded(d.Key) {
				continue
			}
			sub.AddDep(key, d)
			queue = append(queue, d.Key)
		}
	}
	return sub, nil
}

func matchAny(patterns []string, key string) bool {
	for _, pat := range patterns {
		if match(pat, key) {
			return true
		}
	}
	return false
}

func match(pattern, key string) bool {
	ok, err := path.Match(NormalizeKey(pattern), key)
	return err == nil && ok
}
