package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depview/depview/pkg/buildinfo"
)

// Execute runs the depview CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (inspect,
// render, latest, serve, cache), configures logging based on the
// --verbose flag, loads layered configuration, and executes the command
// tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		cfgFile string
		cfg     = &Config{}
	)

	root := &cobra.Command{
		Use:          "depview",
		Short:        "depview inspects and visualizes package dependency graphs",
		Long:         `depview is a CLI tool for turning lock files (poetry.lock, package-lock.json, go mod graph output) into dependency graphs and rendering them as text trees, Mermaid flowcharts, Graphviz diagrams, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			loaded, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: depview.yaml)")
	root.PersistentFlags().Bool("no-cache", false, "disable the registry response cache")
	root.PersistentFlags().String("cache-dir", "", "cache directory (default: ~/.cache/depview)")
	root.PersistentFlags().String("redis-addr", "", "use Redis at host:port as the cache backend")

	root.AddCommand(newInspectCmd(cfg))
	root.AddCommand(newRenderCmd(cfg))
	root.AddCommand(newLatestCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newCacheCmd(cfg))

	return root.ExecuteContext(ctx)
}
