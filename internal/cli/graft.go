package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// graftOpts holds the command-line flags for the graft command.
type graftOpts struct {
	parent string // ref of the new parent in the destination; empty grafts as a new root
	output string // output file; defaults to overwriting the destination file
}

// newGraftCmd creates the graft command, which moves a subtree from a source
// document into a destination document.
func newGraftCmd() *cobra.Command {
	var opts graftOpts

	cmd := &cobra.Command{
		Use:   "graft [dst] [src] [ref]",
		Short: "Move a subtree from one document into another",
		Long: `Graft moves the subtree rooted at [ref] out of the source document and into
the destination document, attaching it under --parent (or as a new root when
--parent is omitted). The merged document is written to --output, or back to
the destination file by default. The source file on disk is not modified.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraft(cmd, args[0], args[1], args[2], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.parent, "parent", "p", "", "ref of the new parent in the destination")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite [dst])")
	return cmd
}

func runGraft(cmd *cobra.Command, dstPath, srcPath, refArg string, opts *graftOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	id, err := parseRefArg(refArg)
	if err != nil {
		return err
	}
	parent := ref.Nil
	if opts.parent != "" {
		if parent, err = parseRefArg(opts.parent); err != nil {
			return err
		}
	}

	dst, err := codec.ReadFile(dstPath)
	if err != nil {
		return err
	}
	src, err := codec.ReadFile(srcPath)
	if err != nil {
		return err
	}

	// Check the contract up front: Transplant treats a missing source ref
	// or parent as a programming error, but here they are user input.
	if err := requireInstance(src, id, "instance"); err != nil {
		return err
	}
	if !parent.IsNil() {
		if err := requireInstance(dst, parent, "parent"); err != nil {
			return err
		}
	}

	// Refs are unique per document, not globally. Grafting a subtree whose
	// refs already exist in the destination (the same file given for both
	// sides, or two copies of one document) would overwrite live instances
	// and corrupt the result, so refuse before touching either forest.
	cur := src.Descendants(id)
	for in, ok := cur.Next(); ok; in, ok = cur.Next() {
		if dst.Contains(in.ID()) {
			return apperrors.New(apperrors.ErrCodeRefConflict, "ref %s already exists in %s", in.ID(), dstPath)
		}
	}

	before := dst.Len()
	dst.Transplant(src, id, parent)

	out := opts.output
	if out == "" {
		out = dstPath
	}
	if err := codec.WriteFile(dst, out); err != nil {
		return err
	}

	prog.done(statsLine("Grafted", dst.Len()-before, out))
	return nil
}
