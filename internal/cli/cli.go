// Package cli implements the rbxdom command-line interface.
//
// This package provides commands for inspecting, validating, and reshaping
// forest documents: JSON files holding an identity-addressed tree of
// instances. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - show: Print a forest as an indented tree
//   - info: Print summary statistics for a forest
//   - validate: Check a document's structural integrity
//   - extract: Detach a subtree into its own document
//   - graft: Move a subtree from one document into another
//   - render: Generate DOT, SVG, or PNG diagrams
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. In verbose mode the CLI also registers
// observability hooks so every structural mutation is logged.
//
// # Example
//
//	import "github.com/ThatTimothy/rbx-dom/internal/cli"
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/buildinfo"
	"github.com/ThatTimothy/rbx-dom/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "rbxdom"

// Execute runs the rbxdom CLI and returns an error if any command fails.
// This is the main entry point for the CLI application; ctx carries signal
// cancellation from main.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "rbxdom inspects and reshapes instance forest documents",
		Long:         `rbxdom is a CLI tool for working with forest documents: identity-addressed trees of instances stored as JSON. It can print, validate, and render documents, detach subtrees into their own files, and graft subtrees between documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			if verbose {
				hooks := &logHooks{logger: logger}
				observability.SetForestHooks(hooks)
				observability.SetCodecHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/rbxdom/config.toml)")

	root.AddCommand(newShowCmd(&configPath))
	root.AddCommand(newInfoCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newGraftCmd())
	root.AddCommand(newRenderCmd(&configPath))

	return root.ExecuteContext(ctx)
}
