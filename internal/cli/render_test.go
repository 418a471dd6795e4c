package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/depview/depview/pkg/graphio"
	"github.com/depview/depview/pkg/pkggraph"
	"github.com/depview/depview/pkg/render"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"flask", []string{"flask"}},
		{"flask,click", []string{"flask", "click"}},
		{" flask , click ,", []string{"flask", "click"}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func testGraphFile(t *testing.T) string {
	t.Helper()
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "app", Name: "app", Version: "1.0.0"})
	g.AddPackage(pkggraph.Package{Key: "lib", Name: "lib", Version: "2.0.0"})
	g.AddDep("app", pkggraph.Dep{Key: "lib", Name: "lib", VersionSpec: ">=2.0", Version: "2.0.0"})

	path := filepath.Join(t.TempDir(), "app.graph.json")
	if err := graphio.ExportJSON(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGraphFromJSON(t *testing.T) {
	path := testGraphFile(t)

	g, err := loadGraph(context.Background(), path)
	if err != nil {
		t.Fatalf("loadGraph error: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

func TestLoadGraphFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package-lock.json")
	content := `{
  "name": "app",
  "lockfileVersion": 3,
  "packages": {
    "": { "name": "app", "version": "1.0.0", "dependencies": { "a": "^1.0.0" } },
    "node_modules/a": { "version": "1.2.3" }
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := loadGraph(context.Background(), path)
	if err != nil {
		t.Fatalf("loadGraph error: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

func TestRunRenderMermaidToFile(t *testing.T) {
	input := testGraphFile(t)
	out := filepath.Join(t.TempDir(), "graph.mmd")

	opts := renderOpts{format: "mermaid", output: out}
	if err := runRender(context.Background(), input, &opts); err != nil {
		t.Fatalf("runRender error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "flowchart TD\n") {
		t.Errorf("output should start with flowchart header, got %q", text[:min(len(text), 40)])
	}
	if !strings.Contains(text, `app -- ">=2.0" --> lib`) {
		t.Errorf("output missing edge, got:\n%s", text)
	}
}

func TestRunRenderReverse(t *testing.T) {
	input := testGraphFile(t)
	out := filepath.Join(t.TempDir(), "graph.mmd")

	opts := renderOpts{format: "mermaid", output: out, reverse: true}
	if err := runRender(context.Background(), input, &opts); err != nil {
		t.Fatalf("runRender error: %v", err)
	}

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), `lib -- ">=2.0" --> app`) {
		t.Errorf("reversed output should flip the edge, got:\n%s", data)
	}
}

func TestRunRenderUnknownFormat(t *testing.T) {
	input := testGraphFile(t)
	opts := renderOpts{format: "gif"}
	if err := runRender(context.Background(), input, &opts); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteOutputBinaryDefaultsToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.lock")

	if err := writeOutput(input, render.FormatPNG, []byte{1, 2, 3}, ""); err != nil {
		t.Fatalf("writeOutput error: %v", err)
	}
	want := filepath.Join(dir, "graph.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}
}
