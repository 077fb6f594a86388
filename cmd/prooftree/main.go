package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bracketcmder "github.com/papercomputeco/prooftree/cmd/prooftree/bracket"
	provecmder "github.com/papercomputeco/prooftree/cmd/prooftree/prove"
	rendercmder "github.com/papercomputeco/prooftree/cmd/prooftree/render"
	rootcmder "github.com/papercomputeco/prooftree/cmd/prooftree/root"
	verifycmder "github.com/papercomputeco/prooftree/cmd/prooftree/verify"
	"github.com/papercomputeco/prooftree/pkg/logger"
)

const longDesc string = `prooftree builds a binary Merkle tree over an ordered list of values,
generates inclusion proofs for its leaves, and verifies them.

Leaves come from positional arguments, a file (--file), or a
seeded sample of integers (--sample).`

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prooftree",
		Short:         "Merkle tree inclusion proofs",
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		rootcmder.NewRootCmd(),
		provecmder.NewProveCmd(),
		verifycmder.NewVerifyCmd(),
		bracketcmder.NewBracketCmd(),
		rendercmder.NewRenderCmd(),
	)

	return cmd
}

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		log := logger.NewLoggerTo(os.Stderr, false)
		log.Error("prooftree failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
