// Package render selects and drives the individual output renderers.
//
// Each renderer consumes a [pkggraph.PackageDAG] and produces one output
// artifact. Text-based formats (text, json, mermaid, dot) are pure
// functions of the graph; svg and png additionally run Graphviz layout.
package render

import (
	"bytes"
	"context"
	"strings"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/pkggraph"
	"github.com/depview/depview/pkg/render/dot"
	"github.com/depview/depview/pkg/render/jsonout"
	"github.com/depview/depview/pkg/render/mermaid"
	"github.com/depview/depview/pkg/render/text"
)

// Format identifies an output format.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
)

// Formats lists all supported formats in display order.
var Formats = []Format{FormatText, FormatJSON, FormatMermaid, FormatDOT, FormatSVG, FormatPNG}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (available: %s)", s, strings.Join(names, ", "))
}

// Binary reports whether the format produces binary output that should
// not be written to a terminal.
func (f Format) Binary() bool { return f == FormatPNG }

// Options carries the renderer knobs shared across formats. Formats
// ignore options that do not apply to them.
type Options struct {
	All   bool // text: list every package at top level
	Depth int  // text: limit tree depth, 0 = unlimited
}

// Render produces the graph in the requested format.
func Render(ctx context.Context, g *pkggraph.PackageDAG, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(text.Render(g, text.Options{All: opts.All, Depth: opts.Depth})), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := jsonout.Write(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMermaid:
		return []byte(mermaid.Render(g)), nil
	case FormatDOT:
		return []byte(dot.ToDOT(g)), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(g))
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(g))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}
