package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
)

// newValidateCmd creates the validate command, which checks a document's
// structural integrity.
//
// Decoding already rejects inconsistent documents, so a document that reads
// successfully is valid; the command exists to give that check a name and a
// zero/non-zero exit code for scripting.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a forest document's structural integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d instances, %d roots)\n", args[0], f.Len(), len(f.Roots()))
			return nil
		},
	}
}
