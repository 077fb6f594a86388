package merkle

import (
	"go.uber.org/zap"
)

// Proof is an inclusion proof for one leaf.
//
// Digests is the primary form: sibling digests in root-ward order.
// It carries no side information, so it can only be checked by the tree
// that issued it (see [*Tree.Verify]).
// Steps repeats the same hops with their sides,
// which is enough to check the proof against a bare root digest (see [VerifyDetached]).
type Proof struct {
	Index int `json:"index"`

	// LeafHash is the digest of the target leaf.
	LeafHash string `json:"leaf_hash"`

	Digests []string `json:"digests"`

	// NodeIDs are the arena ids of the siblings in Digests,
	// for verification in [ModeNodeID].
	NodeIDs []NodeID `json:"node_ids"`

	Steps []Step `json:"steps"`
}

// Step is one self-contained hop of a proof.
// Side is the side of the sibling, the opposite of the node being proven.
type Step struct {
	Side   Side   `json:"side"`
	Digest string `json:"digest"`
}

// Len returns the number of hops in the proof.
func (p *Proof) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Digests)
}

// Generate returns the inclusion proof for the leaf at index,
// walking from the leaf to the root and collecting sibling digests.
//
// If d is not nil it is reset and then labelled:
// the leaf as target, each sibling as witness, each ancestor as path.
//
// The index becomes the only one that [*Tree.Verify] accepts
// until the next generate call.
func (t *Tree) Generate(index int, d *Diagnostics) (*Proof, error) {
	if err := t.checkIndex(index); err != nil {
		return nil, err
	}

	d.Reset()
	p := t.path(index, d)
	t.issued = append(t.issued[:0], index)

	t.logger.Debug("generated inclusion proof",
		zap.Int("index", index),
		zap.Int("hops", p.Len()),
	)

	return p, nil
}

func (t *Tree) path(index int, d *Diagnostics) *Proof {
	cur := &t.nodes[index]
	d.set(cur.ID, LabelTarget)

	p := &Proof{
		Index:    index,
		LeafHash: cur.Hash,
	}
	for cur.Sibling != NoNode {
		sib := &t.nodes[cur.Sibling]
		p.Digests = append(p.Digests, sib.Hash)
		p.NodeIDs = append(p.NodeIDs, sib.ID)
		p.Steps = append(p.Steps, Step{Side: sib.Side, Digest: sib.Hash})

		d.set(sib.ID, LabelWitness)
		d.set(cur.Parent, LabelPath)

		cur = &t.nodes[cur.Parent]
	}
	return p
}

// Bracket is a pair of inclusion proofs for two adjacent leaf indices,
// used to argue that no leaf sits between them.
//
// When Lower is the last leaf, Upper is an empty proof.
type Bracket struct {
	Lower *Proof `json:"lower"`
	Upper *Proof `json:"upper"`
}

// HasUpper reports whether the bracket has a leaf above Lower.
func (b *Bracket) HasUpper() bool {
	return b.Upper != nil && b.Upper.LeafHash != ""
}

// GenerateBracket returns proofs for leaves lower and lower+1.
// If lower is the last leaf, the upper proof is empty.
//
// Both indices are accepted by [*Tree.Verify] until the next generate call.
func (t *Tree) GenerateBracket(lower int, d *Diagnostics) (*Bracket, error) {
	if err := t.checkIndex(lower); err != nil {
		return nil, err
	}

	d.Reset()
	b := &Bracket{Lower: t.path(lower, d)}
	t.issued = append(t.issued[:0], lower)

	upper := lower + 1
	if upper < t.nLeaves {
		b.Upper = t.path(upper, d)
		t.issued = append(t.issued, upper)
	} else {
		b.Upper = &Proof{Index: upper}
	}

	t.logger.Debug("generated non-membership bracket",
		zap.Int("lower", lower),
		zap.Int("upper", upper),
		zap.Bool("has_upper", b.HasUpper()),
	)

	return b, nil
}

// Position selects what to prove: an existing leaf, or the gap between two leaves.
type Position interface {
	isPosition()
}

// ExistingLeaf requests an inclusion proof for the leaf at Index.
type ExistingLeaf struct {
	Index int
}

// BetweenLeaves requests a bracket around the gap between Lower and Lower+1.
type BetweenLeaves struct {
	Lower int
}

func (ExistingLeaf) isPosition()  {}
func (BetweenLeaves) isPosition() {}

// Prove dispatches on pos.
// For [ExistingLeaf] only the Lower half of the returned bracket is set.
func (t *Tree) Prove(pos Position, d *Diagnostics) (*Bracket, error) {
	switch p := pos.(type) {
	case ExistingLeaf:
		proof, err := t.Generate(p.Index, d)
		if err != nil {
			return nil, err
		}
		return &Bracket{Lower: proof}, nil
	case BetweenLeaves:
		return t.GenerateBracket(p.Lower, d)
	default:
		panic("BUG: unknown position type")
	}
}
