// Package treeflags wires the flags every prooftree command shares:
// where the leaves come from, the config file and the log level.
package treeflags

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/prooftree/pkg/config"
	"github.com/papercomputeco/prooftree/pkg/logger"
	"github.com/papercomputeco/prooftree/pkg/merkle"
)

// Sampled values are distinct integers in [1, sampleLimit).
const sampleLimit = 1000

// Flags holds the shared flag values of a command.
type Flags struct {
	ConfigPath string
	Debug      bool
	Hash       string

	File   string
	Sample int
	Seed   uint64
}

// Register adds the shared flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&f.Hash, "hash", "", "Hash function (sha256 or blake3); overrides the config file")
	cmd.Flags().StringVarP(&f.File, "file", "f", "", "Read leaf values from a file, one per line")
	cmd.Flags().IntVar(&f.Sample, "sample", 0, "Use this many distinct sampled integers as leaves")
	cmd.Flags().Uint64Var(&f.Seed, "seed", 1, "Seed for --sample")
}

// Session is everything a command needs after flag parsing.
type Session struct {
	Config config.Config
	Logger *zap.Logger
	Tree   *merkle.Tree
	Leaves []any
}

// Open loads the config, builds a logger writing to the command's stderr,
// resolves the leaves and builds the tree.
// The caller should Sync the returned logger.
func (f *Flags) Open(cmd *cobra.Command, args []string) (*Session, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.Hash != "" {
		cfg.Hash = f.Hash
	}
	if f.Debug {
		cfg.Debug = true
	}

	hasher, err := cfg.Hasher()
	if err != nil {
		return nil, err
	}

	log := logger.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)

	leaves, err := f.leaves(args)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.Build(leaves, merkle.WithHasher(hasher), merkle.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("could not build tree: %w", err)
	}

	return &Session{
		Config: cfg,
		Logger: log,
		Tree:   tree,
		Leaves: leaves,
	}, nil
}

// leaves picks exactly one source: positional args, --file, or --sample.
func (f *Flags) leaves(args []string) ([]any, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if f.File != "" {
		sources++
	}
	if f.Sample > 0 {
		sources++
	}
	if sources > 1 {
		return nil, errors.New("use only one of: positional values, --file, --sample")
	}

	switch {
	case f.File != "":
		fh, err := os.Open(f.File)
		if err != nil {
			return nil, fmt.Errorf("could not open leaf file: %w", err)
		}
		defer fh.Close()
		return ReadLines(fh)
	case f.Sample > 0:
		return Sample(f.Sample, f.Seed)
	default:
		return merkle.Values(args), nil
	}
}

// ReadLines returns the non-blank lines of r, trimmed, in order.
func ReadLines(r io.Reader) ([]any, error) {
	var out []any
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read leaves: %w", err)
	}
	return out, nil
}

// Sample returns n distinct integers in [1, 1000), deterministic for a seed.
func Sample(n int, seed uint64) ([]any, error) {
	if n < 1 || n >= sampleLimit {
		return nil, fmt.Errorf("sample size must be in [1, %d), got %d", sampleLimit, n)
	}
	r := rand.New(rand.NewPCG(seed, seed))
	perm := r.Perm(sampleLimit - 1)

	out := make([]any, n)
	for i := range out {
		out[i] = perm[i] + 1
	}
	return out, nil
}

// ParseMode maps a --mode flag value to a verify mode.
func ParseMode(s string) (merkle.Mode, error) {
	switch s {
	case "", "digest":
		return merkle.ModeDigest, nil
	case "node-id":
		return merkle.ModeNodeID, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want digest or node-id)", s)
	}
}
