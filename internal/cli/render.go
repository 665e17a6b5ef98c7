package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from the input path when empty
	format   string // "dot", "svg", or "png"
	detailed bool   // include payloads in node labels
}

// newRenderCmd creates the render command for generating node-link diagrams
// of a document's structure.
func newRenderCmd(configPath *string) *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a forest document as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				opts.format = cfg.Render.Format
			}
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = cfg.Render.Detailed
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path with new extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include payloads in node labels")
	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "dot", "svg", "png":
		return nil
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown format %q (want dot, svg, or png)", format)
	}
}

func runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	f, err := codec.ReadFile(path)
	if err != nil {
		return err
	}

	dot := render.ToDOT(f, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		if data, err = render.RenderSVG(dot); err != nil {
			return err
		}
	case "png":
		if data, err = render.RenderPNG(dot); err != nil {
			return err
		}
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	prog.done(fmt.Sprintf("Rendered %d instances to %s", f.Len(), out))
	return nil
}
