package rootcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/prooftree/cmd/prooftree/treeflags"
)

const rootLongDesc string = `Build a Merkle tree from the given leaves and print its root digest.

Leaves are hashed in exactly the order given; sort them first
if you need a canonical root.

Examples:
  prooftree root alice bob carol
  prooftree root --hash blake3 --file leaves.txt
  prooftree root --sample 128 --seed 7`

const rootShortDesc string = "Print the root digest of a tree"

type rootCommander struct {
	flags treeflags.Flags
}

func NewRootCmd() *cobra.Command {
	cmder := &rootCommander{}

	cmd := &cobra.Command{
		Use:   "root [values...]",
		Short: rootShortDesc,
		Long:  rootLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmder.flags.Register(cmd)

	return cmd
}

func (c *rootCommander) run(cmd *cobra.Command, args []string) error {
	s, err := c.flags.Open(cmd, args)
	if err != nil {
		return err
	}
	defer s.Logger.Sync()

	t := s.Tree
	fmt.Fprintln(cmd.OutOrStdout(), t.RootHash())
	fmt.Fprintf(cmd.ErrOrStderr(), "%d leaves, %d nodes, height %d (%s)\n",
		t.LeafCount(), t.NodeCount(), t.Height(), t.Hasher().Name())

	return nil
}
