package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/ThatTimothy/rbx-dom/pkg/codec"
	"github.com/ThatTimothy/rbx-dom/pkg/forest"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

var (
	payloadStyle = lipgloss.NewStyle().Bold(true)
	refStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// newShowCmd creates the show command, which prints a document as an
// indented tree, one block per root.
func newShowCmd(configPath *string) *cobra.Command {
	var showRefs bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a forest document as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("refs") {
				cfg.Show.ShowRefs = showRefs
			}
			return runShow(cmd, args[0], cfg.Show)
		},
	}

	cmd.Flags().BoolVar(&showRefs, "refs", true, "print short refs next to payloads")
	return cmd
}

func runShow(cmd *cobra.Command, path string, cfg ShowConfig) error {
	f, err := codec.ReadFile(path)
	if err != nil {
		return err
	}

	for _, root := range sortedRoots(f) {
		t := buildTree(f, root, cfg)
		t.Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(branchStyle)
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}

	loggerFromContext(cmd.Context()).Debug("showed document", "path", path, "instances", f.Len())
	return nil
}

func buildTree(f *forest.Forest, id ref.Ref, cfg ShowConfig) *tree.Tree {
	in, ok := f.Get(id)
	if !ok {
		return tree.Root(refStyle.Render(id.Short()))
	}
	t := tree.Root(instanceLabel(in, cfg))
	for _, child := range in.Children() {
		t.Child(buildTree(f, child, cfg))
	}
	return t
}

func instanceLabel(in *forest.Instance, cfg ShowConfig) string {
	label := payloadStyle.Render(fmt.Sprintf("%v", in.Payload))
	if in.Payload == nil {
		label = payloadStyle.Render("(no payload)")
	}
	if cfg.ShowRefs {
		label += " " + refStyle.Render(in.ID().Short())
	}
	return label
}
