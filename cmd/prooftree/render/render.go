package rendercmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/prooftree/cmd/prooftree/treeflags"
	"github.com/papercomputeco/prooftree/pkg/merkle"
	"github.com/papercomputeco/prooftree/pkg/render"
)

const renderLongDesc string = `Draw the tree, optionally highlighting the proof path of one leaf.

The dot format is Graphviz input; pipe it to "dot -Tpng".
The terminal format prints an indented, colored tree.

Examples:
  prooftree render --sample 8 | dot -Tpng -o tree.png
  prooftree render --format terminal --index 3 a b c d e`

const renderShortDesc string = "Render the tree as Graphviz DOT or in the terminal"

type renderCommander struct {
	flags  treeflags.Flags
	format string
	index  int
}

func NewRenderCmd() *cobra.Command {
	cmder := &renderCommander{}

	cmd := &cobra.Command{
		Use:   "render [values...]",
		Short: renderShortDesc,
		Long:  renderLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().StringVar(&cmder.format, "format", "dot", "Output format: dot or terminal")
	cmd.Flags().IntVarP(&cmder.index, "index", "i", -1, "Highlight the proof path of this leaf")

	return cmd
}

func (c *renderCommander) run(cmd *cobra.Command, args []string) error {
	if c.format != "dot" && c.format != "terminal" {
		return fmt.Errorf("unknown --format %q (want dot or terminal)", c.format)
	}

	s, err := c.flags.Open(cmd, args)
	if err != nil {
		return err
	}
	defer s.Logger.Sync()

	d := merkle.NewDiagnostics()
	if c.index >= 0 {
		if _, err := s.Tree.Generate(c.index, d); err != nil {
			return fmt.Errorf("could not generate proof: %w", err)
		}
	}

	if c.format == "dot" {
		return render.DOT(cmd.OutOrStdout(), s.Tree, d, s.Config.Palette)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), render.Terminal(s.Tree, d, s.Config.Palette))
	return err
}
