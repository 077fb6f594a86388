package verifycmder

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/prooftree/cmd/prooftree/treeflags"
	"github.com/papercomputeco/prooftree/pkg/merkle"
	"github.com/papercomputeco/prooftree/pkg/render"
)

const verifyLongDesc string = `Generate a proof for one leaf and verify it against the same tree.

The proof is generated for --proof-index (defaults to --index)
and then verified against --index. Verifying against a different
index than the proof was generated for is always rejected.

--corrupt overwrites the stored digest of a node before verifying,
to see where the verifier first detects the damage.

Examples:
  prooftree verify --index 3 --sample 16
  prooftree verify --index 3 --corrupt 20 --show terminal --sample 16
  prooftree verify --index 1 --proof-index 2 a b c d`

const verifyShortDesc string = "Generate and verify an inclusion proof"

// ErrVerificationFailed is returned when the proof did not verify.
var ErrVerificationFailed = errors.New("verification failed")

type verifyCommander struct {
	flags      treeflags.Flags
	index      int
	proofIndex int
	mode       string
	corrupt    int
	show       string
}

func NewVerifyCmd() *cobra.Command {
	cmder := &verifyCommander{}

	cmd := &cobra.Command{
		Use:   "verify [values...]",
		Short: verifyShortDesc,
		Long:  verifyLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().IntVarP(&cmder.index, "index", "i", 0, "Leaf index to verify")
	cmd.Flags().IntVar(&cmder.proofIndex, "proof-index", -1, "Leaf index to generate the proof for (default --index)")
	cmd.Flags().StringVar(&cmder.mode, "mode", "digest", "Proof entry mode: digest or node-id")
	cmd.Flags().IntVar(&cmder.corrupt, "corrupt", -1, "Node id whose stored digest is corrupted before verifying")
	cmd.Flags().StringVar(&cmder.show, "show", "", "Render the labelled tree afterwards: dot or terminal")

	return cmd
}

func (c *verifyCommander) run(cmd *cobra.Command, args []string) error {
	mode, err := treeflags.ParseMode(c.mode)
	if err != nil {
		return err
	}

	s, err := c.flags.Open(cmd, args)
	if err != nil {
		return err
	}
	defer s.Logger.Sync()

	proofIndex := c.proofIndex
	if proofIndex < 0 {
		proofIndex = c.index
	}

	d := merkle.NewDiagnostics()
	p, err := s.Tree.Generate(proofIndex, d)
	if err != nil {
		return fmt.Errorf("could not generate proof: %w", err)
	}

	if c.corrupt >= 0 {
		if err := s.Tree.Corrupt(merkle.NodeID(c.corrupt), "corrupted"); err != nil {
			return err
		}
		s.Logger.Info("corrupted node digest", zap.Int("node", c.corrupt))
	}

	ok, bad, err := s.Tree.Verify(p, c.index, mode, d)
	if showErr := c.render(cmd.OutOrStdout(), s, d); showErr != nil {
		return showErr
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case ok:
		fmt.Fprintf(out, "PASS leaf %d (%d hops, %s mode)\n", c.index, p.Len(), mode)
		return nil
	case bad != nil:
		fmt.Fprintf(out, "FAIL leaf %d: first mismatch at node %d\n", c.index, bad.ID)
		return fmt.Errorf("%w at node %d", ErrVerificationFailed, bad.ID)
	default:
		fmt.Fprintf(out, "FAIL leaf %d: proof does not end at the root\n", c.index)
		return ErrVerificationFailed
	}
}

func (c *verifyCommander) render(w io.Writer, s *treeflags.Session, d *merkle.Diagnostics) error {
	switch c.show {
	case "":
		return nil
	case "dot":
		return render.DOT(w, s.Tree, d, s.Config.Palette)
	case "terminal":
		_, err := io.WriteString(w, render.Terminal(s.Tree, d, s.Config.Palette))
		return err
	default:
		return fmt.Errorf("unknown --show %q (want dot or terminal)", c.show)
	}
}
