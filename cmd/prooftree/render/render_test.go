package rendercmder

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render Command", func() {
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewRenderCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(GinkgoWriter)
		err := cmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	It("writes DOT by default", func() {
		out, err := run("a", "b", "c", "d")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix("digraph MerkleTree {"))
		Expect(strings.Count(out, "->")).To(Equal(6))
	})

	It("highlights a proof path in the terminal", func() {
		out, err := run("--format", "terminal", "--index", "3", "a", "b", "c", "d")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("LEAF 3 [R]"))
		Expect(out).To(ContainSubstring("(target)"))
		Expect(out).To(ContainSubstring("(witness)"))
	})

	It("applies the configured palette", func() {
		out, err := run("--index", "0", "a", "b")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`0 [label="0", fillcolor="#ef476f"];`))
	})

	It("rejects unknown formats", func() {
		_, err := run("--format", "svg", "a")
		Expect(err).To(HaveOccurred())
	})
})
