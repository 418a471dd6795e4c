package render

import (
	"context"
	"strings"
	"testing"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/pkggraph"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"MERMAID", FormatMermaid, false},
		{" svg ", FormatSVG, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("error code = %q, want INVALID_FORMAT", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRender_TextFormats(t *testing.T) {
	g := pkggraph.New()
	g.AddPackage(pkggraph.Package{Key: "a", Name: "a", Version: "1.0"})
	g.AddPackage(pkggraph.Package{Key: "b", Name: "b", Version: "2.0"})
	g.AddDep("a", pkggraph.Dep{Key: "b", Name: "b", VersionSpec: ">=2.0", Version: "2.0"})

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "a==1.0"},
		{FormatJSON, `"installed_version": "1.0"`},
		{FormatMermaid, "flowchart TD"},
		{FormatDOT, "digraph deps"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			out, err := Render(context.Background(), g, tt.format, Options{})
			if err != nil {
				t.Fatalf("Render(%s): %v", tt.format, err)
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("Render(%s) missing %q:\n%s", tt.format, tt.want, out)
			}
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), pkggraph.New(), Format("nope"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestFormat_Binary(t *testing.T) {
	if FormatMermaid.Binary() || FormatSVG.Binary() {
		t.Error("text formats flagged binary")
	}
	if !FormatPNG.Binary() {
		t.Error("png must be flagged binary")
	}
}
