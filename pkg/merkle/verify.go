package merkle

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Mode selects how [*Tree.Verify] reads proof entries.
type Mode uint8

const (
	// ModeDigest reads [Proof.Digests] as literal digests.
	ModeDigest Mode = iota

	// ModeNodeID reads [Proof.NodeIDs] and looks the digests up in the tree's arena.
	// This is only meaningful against the tree that generated the proof.
	ModeNodeID
)

func (m Mode) String() string {
	switch m {
	case ModeDigest:
		return "digest"
	case ModeNodeID:
		return "node-id"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Verify recomputes the hash chain from the leaf at index using the proof entries
// and the sides recorded in this tree, comparing each result with the stored parent digest.
//
// It returns true only when every entry matched
// and the last node reached is this tree's root.
// On the first mismatch it returns false and the parent whose digest diverged,
// which is also labelled as error in d.
// A mismatch is not an error: err is only set for invalid calls.
//
// Verify rejects, with [ErrProofIdentityMismatch], any index
// that the latest generate call did not issue a proof for.
// In that case the target leaf is returned and labelled as error.
func (t *Tree) Verify(p *Proof, index int, mode Mode, d *Diagnostics) (bool, *Node, error) {
	if err := t.checkIndex(index); err != nil {
		return false, nil, err
	}

	d.ResetErrors()

	cur := &t.nodes[index]
	if !slices.Contains(t.issued, index) {
		d.set(cur.ID, LabelError)
		t.logger.Warn("proof verified against a different index than it was generated for",
			zap.Int("index", index),
			zap.Ints("issued", t.issued),
		)
		return false, cur, fmt.Errorf("%w: index %d", ErrProofIdentityMismatch, index)
	}

	entries, err := t.entries(p, mode)
	if err != nil {
		return false, nil, err
	}

	for _, entry := range entries {
		if cur.Parent == NoNode {
			// More entries than hops to the root.
			t.logger.Warn("proof longer than path to root",
				zap.Int("index", index),
				zap.Int("entries", len(entries)),
			)
			return false, nil, nil
		}

		var got string
		switch cur.Side {
		case SideLeft:
			got = t.hasher.Node(cur.Hash, entry)
		case SideRight:
			got = t.hasher.Node(entry, cur.Hash)
		default:
			panic(fmt.Errorf("BUG: node %d has a parent but no side", cur.ID))
		}

		parent := &t.nodes[cur.Parent]
		if got != parent.Hash {
			d.set(parent.ID, LabelError)
			t.logger.Warn("inclusion proof mismatch",
				zap.Int("index", index),
				zap.Int("node", int(parent.ID)),
				zap.String("want", parent.Hash),
				zap.String("got", got),
			)
			return false, parent, nil
		}
		cur = parent
	}

	return cur.ID == t.root, nil, nil
}

func (t *Tree) entries(p *Proof, mode Mode) ([]string, error) {
	if p == nil {
		return nil, nil
	}
	switch mode {
	case ModeDigest:
		return p.Digests, nil
	case ModeNodeID:
		out := make([]string, len(p.NodeIDs))
		for i, id := range p.NodeIDs {
			n := t.Node(id)
			if n == nil {
				return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
			}
			out[i] = n.Hash
		}
		return out, nil
	default:
		return nil, fmt.Errorf("merkle: unknown verify mode %d", mode)
	}
}

// VerifyBracket verifies both halves of b against t
// and checks that they cover adjacent indices.
// An empty upper half is accepted only when Lower is the last leaf.
// A bracket without a lower half never verifies.
func (t *Tree) VerifyBracket(b *Bracket, mode Mode, d *Diagnostics) (bool, *Node, error) {
	if b == nil || b.Lower == nil {
		return false, nil, nil
	}

	ok, bad, err := t.Verify(b.Lower, b.Lower.Index, mode, d)
	if err != nil || !ok {
		return false, bad, err
	}

	if !b.HasUpper() {
		return b.Lower.Index == t.nLeaves-1, nil, nil
	}
	if b.Upper.Index != b.Lower.Index+1 {
		return false, nil, nil
	}

	// Verify clears earlier error labels, which is fine: the lower half passed.
	return t.Verify(b.Upper, b.Upper.Index, mode, d)
}

// VerifyDetached checks self-contained proof steps against a root digest
// that is known independently of any tree instance.
func VerifyDetached(h Hasher, leafHash string, steps []Step, rootHash string) bool {
	cur := leafHash
	for _, s := range steps {
		switch s.Side {
		case SideLeft:
			cur = h.Node(s.Digest, cur)
		case SideRight:
			cur = h.Node(cur, s.Digest)
		default:
			return false
		}
	}
	return cur == rootHash
}
