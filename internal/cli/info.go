package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
)

// newInfoCmd creates the info command, which prints summary statistics
// for a forest document.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Print summary statistics for a forest document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, path string) error {
	f, err := codec.ReadFile(path)
	if err != nil {
		return err
	}

	depth := 0
	leaves := 0
	for _, root := range f.Roots() {
		if d := maxDepth(f, root); d > depth {
			depth = d
		}
		cur := f.Descendants(root)
		for in, ok := cur.Next(); ok; in, ok = cur.Next() {
			if len(in.Children()) == 0 {
				leaves++
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("Metric", "Value").
		Rows(
			[]string{"Instances", strconv.Itoa(f.Len())},
			[]string{"Roots", strconv.Itoa(len(f.Roots()))},
			[]string{"Leaves", strconv.Itoa(leaves)},
			[]string{"Max depth", strconv.Itoa(depth)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
