package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/depview/depview/pkg/graphio"
	"github.com/depview/depview/pkg/manifest"
	"github.com/depview/depview/pkg/pkggraph"
	"github.com/depview/depview/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format      string   // output format: text, json, mermaid, dot, svg, png
	output      string   // output file path; empty means stdout for text formats
	reverse     bool     // render the reversed graph (who depends on X)
	packages    []string // restrict output to these packages and their subtrees
	exclude     []string // drop these packages and their subtrees
	all         bool     // text: list every package at top level
	depth       int      // text: limit tree depth
	interactive bool     // pick packages with the interactive list
}

// newRenderCmd creates the render command. The input is either a manifest
// file or a graph JSON previously written by inspect.
//
// Default settings:
//   - format: from configuration (text unless overridden)
//   - output: stdout for text formats, <input>.<format> for svg/png
func newRenderCmd(cfg *Config) *cobra.Command {
	var packagesStr, excludeStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dependency graph",
		Long: `Render a dependency graph as a text tree, JSON report, Mermaid flowchart,
Graphviz DOT, SVG, or PNG. The input is a manifest file (poetry.lock,
package-lock.json, go mod graph output) or a graph JSON written by
"depview inspect".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = cfg.Format
			}
			opts.packages = splitList(packagesStr)
			opts.exclude = splitList(excludeStr)
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), json, mermaid, dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout, or <input>.<format> for binary formats)")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "show which packages depend on each package")
	cmd.Flags().StringVarP(&packagesStr, "packages", "p", "", "only these packages and their subtrees (comma-separated, * wildcards)")
	cmd.Flags().StringVarP(&excludeStr, "exclude", "e", "", "drop these packages and their subtrees (comma-separated, * wildcards)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "list every package at top level (text)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 0, "limit tree depth (text, 0 = unlimited)")
	cmd.Flags().BoolVar(&opts.interactive, "select", false, "pick packages interactively")

	return cmd
}

// splitList parses a comma-separated flag value into a slice.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadGraph reads a dependency graph from input. Files ending in .json
// are treated as graph JSON from inspect; everything else goes through
// manifest detection.
func loadGraph(ctx context.Context, input string) (*pkggraph.PackageDAG, error) {
	logger := loggerFromContext(ctx)

	if strings.HasSuffix(input, ".json") && filepath.Base(input) != "package-lock.json" {
		logger.Debugf("Loading graph JSON from %s", input)
		return graphio.ImportJSON(input)
	}

	parser, err := manifest.Detect(input, parsers()...)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Detected manifest type %s", parser.Type())
	result, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return result.Graph, nil
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d packages, %d dependencies", g.NodeCount(), g.EdgeCount())

	if opts.interactive {
		picked, err := pickPackages(g)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			printInfo("Nothing selected")
			return nil
		}
		opts.packages = picked
	}

	if len(opts.packages) > 0 || len(opts.exclude) > 0 {
		g, err = g.Filter(opts.packages, opts.exclude)
		if err != nil {
			return err
		}
		logger.Debugf("Filtered graph: %d packages, %d dependencies", g.NodeCount(), g.EdgeCount())
	}

	if opts.reverse {
		g = g.Reverse()
	}

	data, err := render.Render(ctx, g, format, render.Options{All: opts.all, Depth: opts.depth})
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	return writeOutput(input, format, data, opts.output)
}

// writeOutput sends rendered data to the requested destination. Text
// formats default to stdout; binary formats default to a file derived
// from the input name so terminals are not flooded with image bytes.
func writeOutput(input string, format render.Format, data []byte, output string) error {
	if output == "" && !format.Binary() {
		_, err := os.Stdout.Write(data)
		return err
	}
	path := output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// pickPackages opens the interactive package list and returns the keys
// the user selected.
func pickPackages(g *pkggraph.PackageDAG) ([]string, error) {
	model := newPackageListModel(g)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(packageListModel)
	if !ok {
		return nil, nil
	}
	return m.selectedKeys(), nil
}
