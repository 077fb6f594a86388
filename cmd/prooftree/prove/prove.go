package provecmder

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/prooftree/cmd/prooftree/treeflags"
	"github.com/papercomputeco/prooftree/pkg/merkle"
)

const proveLongDesc string = `Generate an inclusion proof for one leaf and print it as JSON.

With --between, prove instead that no leaf sits between
--index and --index+1, by printing proofs for both neighbours.

Examples:
  prooftree prove --index 2 alice bob carol dave
  prooftree prove --index 1 --between --sample 5`

const proveShortDesc string = "Generate an inclusion proof"

type proveCommander struct {
	flags   treeflags.Flags
	index   int
	between bool
}

type proveOutput struct {
	Root  string        `json:"root"`
	Proof *merkle.Proof `json:"proof,omitempty"`

	Bracket *merkle.Bracket `json:"bracket,omitempty"`
}

func NewProveCmd() *cobra.Command {
	cmder := &proveCommander{}

	cmd := &cobra.Command{
		Use:   "prove [values...]",
		Short: proveShortDesc,
		Long:  proveLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().IntVarP(&cmder.index, "index", "i", 0, "Leaf index to prove")
	cmd.Flags().BoolVar(&cmder.between, "between", false, "Prove the gap between --index and --index+1")

	return cmd
}

func (c *proveCommander) run(cmd *cobra.Command, args []string) error {
	s, err := c.flags.Open(cmd, args)
	if err != nil {
		return err
	}
	defer s.Logger.Sync()

	var pos merkle.Position = merkle.ExistingLeaf{Index: c.index}
	if c.between {
		pos = merkle.BetweenLeaves{Lower: c.index}
	}

	b, err := s.Tree.Prove(pos, nil)
	if err != nil {
		return fmt.Errorf("could not generate proof: %w", err)
	}

	out := proveOutput{Root: s.Tree.RootHash()}
	if c.between {
		out.Bracket = b
	} else {
		out.Proof = b.Lower
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
