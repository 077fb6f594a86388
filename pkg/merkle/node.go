// Package merkle is an implementation of a binary Merkle tree
// with inclusion proofs and non-membership brackets.
//
// Nodes live in a single arena owned by the [Tree] and refer to each other
// by [NodeID]. Leaves occupy ids 0..n-1 in input order,
// inner nodes follow in the order they were created.
package merkle

import "fmt"

// NodeID is the stable sequence id of a node within its tree's arena.
type NodeID int

// NoNode marks an absent structural link.
const NoNode NodeID = -1

// Kind tells leaves and inner nodes apart.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindInner
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "LEAF"
	case KindInner:
		return "INNER"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Side is the child slot a node occupies in its parent.
// The root, and a node that has not yet been paired, have SideNone.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideNone:
		return ""
	case SideLeft:
		return "L"
	case SideRight:
		return "R"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Node is a single hash node in the tree.
type Node struct {
	// ID is assigned at creation and never changes.
	// It is only used for diagnostics and rendering, never for hashing.
	ID NodeID `json:"id"`

	// Hash is the hex-encoded digest of this node.
	Hash string `json:"hash"`

	Kind Kind `json:"kind"`

	Parent  NodeID `json:"parent"`
	Left    NodeID `json:"left"`
	Right   NodeID `json:"right"`
	Sibling NodeID `json:"sibling"`

	Side Side `json:"side"`
}

func newNode(id NodeID, hash string, kind Kind) Node {
	return Node{
		ID:      id,
		Hash:    hash,
		Kind:    kind,
		Parent:  NoNode,
		Left:    NoNode,
		Right:   NoNode,
		Sibling: NoNode,
	}
}

// IsRoot reports whether the node has no parent.
// Before a tree is built, carried nodes also have no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == NoNode
}

// Canonical returns the canonical string form of a raw leaf value,
// which is what gets hashed into the leaf digest.
func Canonical(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Values adapts a typed slice to the []any accepted by [*Tree.Build].
func Values[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "LEAF":
		*k = KindLeaf
	case "INNER":
		*k = KindInner
	default:
		return fmt.Errorf("merkle: unknown kind %q", b)
	}
	return nil
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*s = SideNone
	case "L":
		*s = SideLeft
	case "R":
		*s = SideRight
	default:
		return fmt.Errorf("merkle: unknown side %q", b)
	}
	return nil
}
