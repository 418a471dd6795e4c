package pkggraph

// Reverse builds the "who depends on me" view of a forward graph. Every
// package of the forward graph appears as an entry; each neighbor records
// a dependent together with the constraint that dependent declares on the
// entry package.
//
// Dependents are always installed top-level packages, so reversed neighbor
// lists never carry the Missing flag. Calling Reverse on an already
// reversed graph returns the receiver unchanged.
func (g *PackageDAG) Reverse() *PackageDAG {
	if g.reversed {
		return g
	}

	r := NewReversed()
	for _, e := range g.Items() {
		r.ensure(e.Pkg)
	}
	for _, e := range g.Items() {
		for _, d := range e.Deps {
			r.ensure(Package{
				Key:     d.Key,
				Name:    d.Name,
				Version: d.Version,
				Missing: d.Missing,
			})
			r.AddDep(d.Key, Dep{
				Key:         e.Pkg.Key,
				Name:        e.Pkg.Name,
				VersionSpec: d.VersionSpec,
				Version:     e.Pkg.Version,
			})
		}
	}
	return r
}

// ensure registers p as an entry without clobbering richer data recorded
// earlier (a package seen as a top-level entry keeps its installed
// version even when later encountered as a bare neighbor reference).
func (g *PackageDAG) ensure(p Package) {
	if _, ok := g.entries[NormalizeKey(p.Key)]; ok {
		return
	}
	g.AddPackage(p)
}
