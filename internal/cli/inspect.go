package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depview/depview/pkg/graphio"
	"github.com/depview/depview/pkg/manifest"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	output string // output file path for the graph JSON
	strict bool   // exit non-zero when conflicts or missing deps are found
}

// newInspectCmd creates the inspect command. It parses a manifest file,
// reports graph health (cycles, version conflicts, missing packages), and
// writes the graph JSON for later rendering.
func newInspectCmd(cfg *Config) *cobra.Command {
	opts := inspectOpts{}

	cmd := &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "Parse a manifest and report dependency graph health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for the graph JSON (default: <manifest>.graph.json)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when conflicts or missing packages are found")

	return cmd
}

func runInspect(ctx context.Context, input string, opts *inspectOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	parser, err := manifest.Detect(input, parsers()...)
	if err != nil {
		return err
	}
	logger.Debugf("Detected manifest type %s", parser.Type())

	result, err := parser.Parse(input)
	if err != nil {
		return err
	}
	g := result.Graph
	prog.done(fmt.Sprintf("Parsed %d packages, %d dependencies", g.NodeCount(), g.EdgeCount()))

	if result.RootPackage != "" {
		printInfo("Project: %s", result.RootPackage)
	}
	printStats(g.NodeCount(), g.EdgeCount())

	problems := 0
	for _, c := range g.Cycles() {
		printWarning("cycle: %s", c.String())
	}
	for _, c := range g.Conflicts() {
		problems++
		printWarning("conflict: %s", c.String())
	}
	for _, m := range g.MissingDeps() {
		problems++
		printWarning("missing: %s", m.String())
	}
	if problems == 0 {
		printSuccess("No conflicts or missing packages")
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".graph.json"
	}
	if err := graphio.ExportJSON(g, out); err != nil {
		return err
	}
	printFile(out)

	if opts.strict && problems > 0 {
		return fmt.Errorf("%d dependency problems found", problems)
	}
	return nil
}
