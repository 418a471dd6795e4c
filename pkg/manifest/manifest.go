// Package manifest turns local manifest and lock files into package
// dependency graphs.
//
// Each supported ecosystem lives in its own subpackage (python,
// javascript, golang) and registers a [Parser]. [Detect] picks the right
// parser from a file name, so commands can accept any supported file
// without the user naming its type.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/pkggraph"
)

// Parser reads dependency information from a local manifest or lock file.
type Parser interface {
	// Parse reads the file at path and returns the forward dependency graph.
	Parse(path string) (*Result, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g. "poetry.lock").
	Type() string
}

// Result holds the parsed dependency data from a manifest file.
type Result struct {
	Graph       *pkggraph.PackageDAG // forward graph
	Type        string               // parser type that produced this result
	RootPackage string               // name of the root project, if determinable
}

// Detect finds a parser that supports the given file path.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	types := make([]string, len(parsers))
	for i, p := range parsers {
		types[i] = p.Type()
	}
	return nil, errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest %s (supported: %s)", name, strings.Join(types, ", "))
}
