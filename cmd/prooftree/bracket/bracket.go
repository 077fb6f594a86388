package bracketcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/prooftree/cmd/prooftree/treeflags"
	"github.com/papercomputeco/prooftree/pkg/merkle"
)

const bracketLongDesc string = `Show that no leaf sits between --lower and --lower+1.

Generates inclusion proofs for both neighbours and verifies each
against the tree. When --lower is the last leaf there is no upper
neighbour and the upper proof is empty.

Examples:
  prooftree bracket --lower 1 a b c d e
  prooftree bracket --lower 4 a b c d e`

const bracketShortDesc string = "Prove a gap between two adjacent leaves"

var errBracketFailed = errors.New("bracket did not verify")

type bracketCommander struct {
	flags treeflags.Flags
	lower int
	mode  string
}

func NewBracketCmd() *cobra.Command {
	cmder := &bracketCommander{}

	cmd := &cobra.Command{
		Use:   "bracket [values...]",
		Short: bracketShortDesc,
		Long:  bracketLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().IntVarP(&cmder.lower, "lower", "l", 0, "Index of the lower neighbour")
	cmd.Flags().StringVar(&cmder.mode, "mode", "digest", "Proof entry mode: digest or node-id")

	return cmd
}

func (c *bracketCommander) run(cmd *cobra.Command, args []string) error {
	mode, err := treeflags.ParseMode(c.mode)
	if err != nil {
		return err
	}

	s, err := c.flags.Open(cmd, args)
	if err != nil {
		return err
	}
	defer s.Logger.Sync()

	b, err := s.Tree.Prove(merkle.BetweenLeaves{Lower: c.lower}, nil)
	if err != nil {
		return fmt.Errorf("could not generate bracket: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lower leaf %d: %d hops\n", b.Lower.Index, b.Lower.Len())
	if b.HasUpper() {
		fmt.Fprintf(out, "upper leaf %d: %d hops\n", b.Upper.Index, b.Upper.Len())
	} else {
		fmt.Fprintf(out, "upper leaf %d: none (lower is the last leaf)\n", b.Upper.Index)
	}

	ok, bad, err := s.Tree.VerifyBracket(b, mode, nil)
	if err != nil {
		return err
	}
	if !ok {
		if bad != nil {
			return fmt.Errorf("%w: mismatch at node %d", errBracketFailed, bad.ID)
		}
		return errBracketFailed
	}

	fmt.Fprintf(out, "PASS no leaf between %d and %d\n", b.Lower.Index, b.Lower.Index+1)
	return nil
}
