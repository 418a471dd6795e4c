package dot

import (
	"strings"
	"testing"

	"github.com/depview/depview/pkg/pkggraph"
)

func buildGraph() *pkggraph.PackageDAG {
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "app", Name: "app", Version: "0.1"})
	g.AddPackage(pkggraph.Package{Key: "lib", Name: "lib", Version: "1.2"})
	g.AddDep("app", pkggraph.Dep{Key: "lib", Name: "lib", VersionSpec: ">=1.0", Version: "1.2"})
	g.AddDep("app", pkggraph.Dep{Key: "ghost", Name: "ghost", Missing: true})
	return g
}

func TestToDOT(t *testing.T) {
	out := ToDOT(buildGraph())

	checks := []string{
		"digraph deps {",
		"rankdir=TB;",
		`"app" [label="app\n0.1"];`,
		`"lib" [label="lib\n1.2"];`,
		`"app" -> "lib" [label=">=1.0"];`,
		`"app" -> "ghost" [style=dashed];`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, out)
		}
	}
}

func TestToDOT_MissingNodeStyle(t *testing.T) {
	out := ToDOT(buildGraph())

	if !strings.Contains(out, `"ghost" [label="ghost\n(missing)", style="rounded,filled,dashed", fillcolor=lightgrey];`) {
		t.Errorf("missing node not styled:\n%s", out)
	}
}

func TestToDOT_UnconstrainedEdge(t *testing.T) {
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "a", Name: "a", Version: "1.0"})
	g.AddDep("a", pkggraph.Dep{Key: "b", Name: "b", Version: "2.0"})

	if out := ToDOT(g); !strings.Contains(out, `[label="any"]`) {
		t.Errorf("unconstrained edge must be labeled any:\n%s", out)
	}
}

func TestToDOT_NodeDeclaredOnce(t *testing.T) {
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "a", Name: "a", Version: "1.0"})
	g.AddPackage(pkggraph.Package{Key: "b", Name: "b", Version: "1.0"})
	g.AddPackage(pkggraph.Package{Key: "shared", Name: "shared", Version: "1.0"})
	g.AddDep("a", pkggraph.Dep{Key: "shared", Name: "shared", Version: "1.0"})
	g.AddDep("b", pkggraph.Dep{Key: "shared", Name: "shared", Version: "1.0"})

	out := ToDOT(g)
	if n := strings.Count(out, `"shared" [`); n != 1 {
		t.Errorf("shared declared %d times, want 1:\n%s", n, out)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	first := ToDOT(buildGraph())
	for i := 0; i < 5; i++ {
		if ToDOT(buildGraph()) != first {
			t.Fatal("repeated renders differ")
		}
	}
}
