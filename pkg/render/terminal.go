package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/prooftree/pkg/merkle"
)

const hashPreviewLen = 12

// Terminal renders t as an indented tree, root first and left child before right.
// Each line is colored by the node's label in d.
// Without a color-capable terminal the output is plain text.
func Terminal(t *merkle.Tree, d *merkle.Diagnostics, p Palette) string {
	root := t.Root()
	if root == nil {
		return ""
	}

	var sb strings.Builder
	var visit func(id merkle.NodeID, depth int)
	visit = func(id merkle.NodeID, depth int) {
		n := t.Node(id)
		label := d.Label(id)

		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(styleFor(p, label).Render(describe(n, label)))
		sb.WriteByte('\n')

		if n.Left != merkle.NoNode {
			visit(n.Left, depth+1)
		}
		if n.Right != merkle.NoNode {
			visit(n.Right, depth+1)
		}
	}
	visit(root.ID, 0)

	return sb.String()
}

func describe(n *merkle.Node, l merkle.Label) string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(n.ID)))
	if n.Side != merkle.SideNone {
		sb.WriteString(" [" + n.Side.String() + "]")
	}
	sb.WriteByte(' ')
	sb.WriteString(preview(n.Hash))
	if l != merkle.LabelNormal {
		sb.WriteString(" (" + l.String() + ")")
	}
	return sb.String()
}

func styleFor(p Palette, l merkle.Label) lipgloss.Style {
	fg := "#000000"
	if l == merkle.LabelError {
		fg = "#ffffff"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p.Color(l))).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1)
}

func preview(hash string) string {
	if len(hash) <= hashPreviewLen {
		return hash
	}
	return hash[:hashPreviewLen]
}
