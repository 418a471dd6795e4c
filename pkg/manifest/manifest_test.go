package manifest_test

import (
	"testing"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/manifest/golang"
	"github.com/depview/depview/pkg/manifest/javascript"
	"github.com/depview/depview/pkg/manifest/python"
)

func allParsers() []manifest.Parser {
	return []manifest.Parser{
		&python.PoetryLock{},
		&javascript.PackageLock{},
		&golang.ModGraph{},
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
	}{
		{"/project/poetry.lock", "poetry.lock"},
		{"/project/package-lock.json", "package-lock.json"},
		{"/project/go.modgraph", "go.modgraph"},
		{"deps.modgraph", "go.modgraph"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := manifest.Detect(tt.path, allParsers()...)
			if err != nil {
				t.Fatalf("Detect(%q) failed: %v", tt.path, err)
			}
			if p.Type() != tt.wantType {
				t.Errorf("Detect(%q).Type() = %q, want %q", tt.path, p.Type(), tt.wantType)
			}
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	_, err := manifest.Detect("/project/Gemfile.lock", allParsers()...)
	if err == nil {
		t.Fatal("expected error for unsupported manifest")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidManifest {
		t.Errorf("error code = %v, want ErrCodeInvalidManifest", errors.GetCode(err))
	}
}
