// Package render draws a built [merkle.Tree] for people.
//
// Renderers only read the tree and a diagnostics overlay;
// nothing here feeds back into hashing.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/papercomputeco/prooftree/pkg/merkle"
)

// DOT writes t as a Graphviz digraph.
// Nodes are named by sequence id and filled according to their label in d.
func DOT(w io.Writer, t *merkle.Tree, d *merkle.Diagnostics, p Palette) error {
	if !t.Built() {
		return merkle.ErrTreeNotBuilt
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph MerkleTree {")
	fmt.Fprintln(bw, "\tnode [style=filled];")

	_, ids := t.LevelOrder()
	for _, id := range ids {
		fmt.Fprintf(bw, "\t%d [label=\"%d\", fillcolor=\"%s\"];\n", id, id, p.Color(d.Label(id)))
	}
	for _, e := range t.Edges() {
		fmt.Fprintf(bw, "\t%d -> %d;\n", e.Parent, e.Child)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
