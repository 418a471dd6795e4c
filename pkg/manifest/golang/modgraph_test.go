package golang

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModGraph_Supports(t *testing.T) {
	parser := &ModGraph{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"go.modgraph", true},
		{"deps.modgraph", true},
		{"go.mod", false},
		{"go.sum", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go.modgraph")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestModGraph_Parse(t *testing.T) {
	path := writeGraph(t, `example.com/app github.com/spf13/cobra@v1.10.1
example.com/app github.com/spf13/pflag@v1.0.10
github.com/spf13/cobra@v1.10.1 github.com/spf13/pflag@v1.0.9
`)

	result, err := (&ModGraph{}).Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.RootPackage != "example.com/app" {
		t.Errorf("RootPackage = %q, want example.com/app", result.RootPackage)
	}

	g := result.Graph
	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount = %d, want 3", got)
	}

	pflag, ok := g.Lookup("github.com/spf13/pflag")
	if !ok {
		t.Fatal("pflag entry not found")
	}
	if pflag.Pkg.Version != "v1.0.10" {
		t.Errorf("pflag selected version = %q, want v1.0.10", pflag.Pkg.Version)
	}

	cobra, _ := g.Lookup("github.com/spf13/cobra")
	if len(cobra.Deps) != 1 {
		t.Fatalf("cobra has %d deps, want 1", len(cobra.Deps))
	}
	dep := cobra.Deps[0]
	if dep.VersionSpec != "v1.0.9" {
		t.Errorf("cobra requires pflag %q, want v1.0.9", dep.VersionSpec)
	}
	if dep.Version != "v1.0.10" {
		t.Errorf("pflag resolved version via cobra = %q, want v1.0.10", dep.Version)
	}
}

func TestModGraph_SupersededVersionEdgesDropped(t *testing.T) {
	path := writeGraph(t, `example.com/app github.com/a/a@v1.2.0
github.com/a/a@v1.1.0 github.com/b/b@v0.1.0
github.com/a/a@v1.2.0 github.com/b/b@v0.2.0
`)

	result, err := (&ModGraph{}).Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	a, ok := result.Graph.Lookup("github.com/a/a")
	if !ok {
		t.Fatal("a entry not found")
	}
	if len(a.Deps) != 1 {
		t.Fatalf("a has %d deps, want 1 (only selected version contributes)", len(a.Deps))
	}
	if a.Deps[0].VersionSpec != "v0.2.0" {
		t.Errorf("requirement from selected version = %q, want v0.2.0", a.Deps[0].VersionSpec)
	}
}

func TestModGraph_Empty(t *testing.T) {
	path := writeGraph(t, "\n\n")
	if _, err := (&ModGraph{}).Parse(path); err == nil {
		t.Fatal("expected error for empty graph output")
	}
}

func TestModGraph_Malformed(t *testing.T) {
	path := writeGraph(t, "only-one-field\n")
	if _, err := (&ModGraph{}).Parse(path); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestNewerVersion(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"v1.2.0", "v1.1.0", true},
		{"v1.1.0", "v1.2.0", false},
		{"v1.2.0", "v1.2.0", false},
		{"v0.0.0-20240101000000-abcdef123456", "v0.0.0-20230101000000-123456abcdef", true},
		{"v1.0.0", "", true},
		{"", "v1.0.0", false},
	}
	for _, tt := range tests {
		if got := newerVersion(tt.a, tt.b); got != tt.want {
			t.Errorf("newerVersion(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
