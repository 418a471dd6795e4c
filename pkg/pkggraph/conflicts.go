package pkggraph

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Conflict records a dependency whose installed state does not satisfy
// what the parent package declared.
type Conflict struct {
	Pkg Package // the package declaring the requirement
	Dep Dep     // the dependency that violates it
}

// String renders the conflict for warning output.
func (c Conflict) String() string {
	if c.Dep.Missing {
		return fmt.Sprintf("%s requires %s (%s) which is not installed", c.Pkg.Name, c.Dep.Name, specOrAny(c.Dep.VersionSpec))
	}
	return fmt.Sprintf("%s requires %s %s but %s is installed", c.Pkg.Name, c.Dep.Name, c.Dep.VersionSpec, c.Dep.Version)
}

// Conflicts checks every declared constraint of a forward graph against
// the installed version of its target and returns the violations.
//
// Constraints and versions are interpreted as semantic versions via
// Masterminds/semver. Ecosystem-specific spellings that do not parse
// (epoch markers, wildcards the parser rejects, calendar versions) are
// skipped rather than reported: an unparseable constraint is not evidence
// of a conflict. Missing dependencies are reported by [PackageDAG.MissingDeps],
// not here.
func (g *PackageDAG) Conflicts() []Conflict {
	if g.reversed {
		return nil
	}

	var conflicts []Conflict
	for _, e := range g.Items() {
		for _, d := range e.Deps {
			if d.Missing || d.VersionSpec == "" || d.Version == "" {
				continue
			}
			constraint, err := semver.NewConstraint(d.VersionSpec)
			if err != nil {
				continue
			}
			installed, err := semver.NewVersion(d.Version)
			if err != nil {
				continue
			}
			if !constraint.Check(installed) {
				conflicts = append(conflicts, Conflict{Pkg: e.Pkg, Dep: d})
			}
		}
	}
	return conflicts
}

// MissingDeps returns one Conflict per dependency reference whose target
// is not installed.
func (g *PackageDAG) MissingDeps() []Conflict {
	if g.reversed {
		return nil
	}

	var missing []Conflict
	for _, e := range g.Items() {
		for _, d := range e.Deps {
			if d.Missing {
				missing = append(missing, Conflict{Pkg: e.Pkg, Dep: d})
			}
		}
	}
	return missing
}

func specOrAny(spec string) string {
	if spec == "" {
		return "any"
	}
	return spec
}
