package merkle

import (
	"fmt"

	"go.uber.org/zap"
)

// Tree is a binary Merkle tree built once from a fixed, ordered list of leaves.
//
// Leaves are paired left to right on each level.
// When a level has an odd count, its last node is carried up unchanged
// and paired on a later level, so no synthetic padding is ever hashed.
//
// A Tree is not safe for concurrent use:
// every generate call records which indices its proofs were issued for.
type Tree struct {
	hasher Hasher
	logger *zap.Logger

	// Arena. Leaves occupy nodes[:nLeaves].
	nodes   []Node
	nLeaves int
	root    NodeID
	built   bool

	// Indices issued by the latest generate call.
	issued []int
}

// Option configures a [Tree].
type Option func(*Tree)

// WithHasher sets the hash function. The default is [SHA256Hasher].
func WithHasher(h Hasher) Option {
	return func(t *Tree) {
		t.hasher = h
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// New returns an unbuilt tree. Call [*Tree.Build] to populate it.
func New(opts ...Option) *Tree {
	t := &Tree{
		hasher: SHA256Hasher{},
		logger: zap.NewNop(),
		root:   NoNode,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Build returns a new tree built from leaves.
func Build(leaves []any, opts ...Option) (*Tree, error) {
	t := New(opts...)
	if _, err := t.Build(leaves); err != nil {
		return nil, err
	}
	return t, nil
}

// Build hashes every leaf in order and pairs nodes level by level
// until a single root remains, which it returns.
//
// The caller is responsible for any canonical ordering of leaves;
// Build never reorders them.
func (t *Tree) Build(leaves []any) (*Node, error) {
	if t.built {
		return nil, ErrAlreadyBuilt
	}
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(leaves)

	// Any tree where every inner node has exactly two children
	// has this many nodes.
	t.nodes = make([]Node, 0, 2*n-1)
	for i, v := range leaves {
		t.nodes = append(t.nodes, newNode(NodeID(i), t.hasher.Leaf(Canonical(v)), KindLeaf))
	}
	t.nLeaves = n

	level := make([]NodeID, n)
	for i := range level {
		level[i] = NodeID(i)
	}

	for len(level) > 1 {
		next := make([]NodeID, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, t.join(level[i], level[i+1]))
		}
		if len(level)&1 == 1 {
			// Carried up unhashed, still without parent, sibling or side.
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	t.root = level[0]
	t.built = true

	t.logger.Debug("merkle tree built",
		zap.Int("leaves", n),
		zap.Int("nodes", len(t.nodes)),
		zap.String("hasher", t.hasher.Name()),
		zap.String("root", t.nodes[t.root].Hash),
	)

	return &t.nodes[t.root], nil
}

// join creates the parent of left and right and links all three.
func (t *Tree) join(left, right NodeID) NodeID {
	id := NodeID(len(t.nodes))
	if len(t.nodes) == cap(t.nodes) {
		// Would reallocate the arena and invalidate returned *Node values.
		panic(fmt.Errorf("BUG: arena full at %d nodes", len(t.nodes)))
	}

	p := newNode(id, t.hasher.Node(t.nodes[left].Hash, t.nodes[right].Hash), KindInner)
	p.Left, p.Right = left, right
	t.nodes = append(t.nodes, p)

	l, r := &t.nodes[left], &t.nodes[right]
	l.Parent, r.Parent = id, id
	l.Sibling, r.Sibling = right, left
	l.Side, r.Side = SideLeft, SideRight

	return id
}

// Built reports whether Build has completed.
func (t *Tree) Built() bool { return t.built }

// Hasher returns the hash function the tree was built with.
func (t *Tree) Hasher() Hasher { return t.hasher }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return t.nLeaves }

// NodeCount returns the number of nodes in the arena.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Root returns the root node, or nil before Build.
func (t *Tree) Root() *Node {
	if !t.built {
		return nil
	}
	return &t.nodes[t.root]
}

// RootHash returns the root digest, or the empty string before Build.
func (t *Tree) RootHash() string {
	if !t.built {
		return ""
	}
	return t.nodes[t.root].Hash
}

// Leaf returns the leaf at index i.
func (t *Tree) Leaf(i int) (*Node, error) {
	if err := t.checkIndex(i); err != nil {
		return nil, err
	}
	return &t.nodes[i], nil
}

// Node returns the node with the given id, or nil if there is none.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Nodes returns a copy of the arena, ordered by id.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Edge is a parent to child link.
type Edge struct {
	Parent, Child NodeID
}

// Edges returns every parent to child link in breadth-first order.
func (t *Tree) Edges() []Edge {
	var edges []Edge
	t.walk(func(n *Node) {
		if n.Left != NoNode {
			edges = append(edges, Edge{Parent: n.ID, Child: n.Left})
		}
		if n.Right != NoNode {
			edges = append(edges, Edge{Parent: n.ID, Child: n.Right})
		}
	})
	return edges
}

// LevelOrder returns node digests and ids in breadth-first order from the root.
func (t *Tree) LevelOrder() (hashes []string, ids []NodeID) {
	t.walk(func(n *Node) {
		hashes = append(hashes, n.Hash)
		ids = append(ids, n.ID)
	})
	return hashes, ids
}

// Height returns the number of edges on the longest root to leaf path.
// A single-leaf tree has height 0.
func (t *Tree) Height() int {
	if !t.built {
		return 0
	}
	h := 0
	for i := 0; i < t.nLeaves; i++ {
		d := 0
		for cur := NodeID(i); t.nodes[cur].Parent != NoNode; cur = t.nodes[cur].Parent {
			d++
		}
		h = max(h, d)
	}
	return h
}

// Corrupt overwrites the stored digest of a node without touching anything else.
// It exists to simulate storage corruption when exercising the verifier.
func (t *Tree) Corrupt(id NodeID, hash string) error {
	if id < 0 || int(id) >= len(t.nodes) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	t.nodes[id].Hash = hash
	return nil
}

func (t *Tree) walk(fn func(*Node)) {
	if !t.built {
		return
	}
	queue := []NodeID{t.root}
	for len(queue) > 0 {
		n := &t.nodes[queue[0]]
		queue = queue[1:]
		fn(n)
		if n.Left != NoNode {
			queue = append(queue, n.Left)
		}
		if n.Right != NoNode {
			queue = append(queue, n.Right)
		}
	}
}

func (t *Tree) checkIndex(i int) error {
	if !t.built {
		return ErrTreeNotBuilt
	}
	if i < 0 || i >= t.nLeaves {
		return IndexError{Index: i, Count: t.nLeaves}
	}
	return nil
}
