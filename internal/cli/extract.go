package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
)

// extractOpts holds the command-line flags for the extract command.
type extractOpts struct {
	output    string // output file for the detached subtree
	remainder string // optional file for what is left of the source document
}

// newExtractCmd creates the extract command, which detaches a subtree from a
// document into its own file. The source file on disk is left untouched
// unless --remainder points back at it.
func newExtractCmd() *cobra.Command {
	var opts extractOpts

	cmd := &cobra.Command{
		Use:   "extract [file] [ref]",
		Short: "Detach a subtree into its own document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for the detached subtree (required)")
	cmd.Flags().StringVar(&opts.remainder, "remainder", "", "also write the remaining document to this file")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runExtract(cmd *cobra.Command, path, refArg string, opts *extractOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	id, err := parseRefArg(refArg)
	if err != nil {
		return err
	}

	f, err := codec.ReadFile(path)
	if err != nil {
		return err
	}
	if err := requireInstance(f, id, "instance"); err != nil {
		return err
	}

	sub, _ := f.Remove(id)
	if err := codec.WriteFile(sub, opts.output); err != nil {
		return err
	}
	if opts.remainder != "" {
		if err := codec.WriteFile(f, opts.remainder); err != nil {
			return err
		}
	}

	prog.done(statsLine("Extracted", sub.Len(), opts.output))
	return nil
}
