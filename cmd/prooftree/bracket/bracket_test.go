package bracketcmder

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/prooftree/pkg/merkle"
)

var _ = Describe("Bracket Command", func() {
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewBracketCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(GinkgoWriter)
		err := cmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	It("verifies both neighbours", func() {
		out, err := run("--lower", "1", "a", "b", "c", "d", "e")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("lower leaf 1: 3 hops"))
		Expect(out).To(ContainSubstring("upper leaf 2: 3 hops"))
		Expect(out).To(ContainSubstring("PASS no leaf between 1 and 2"))
	})

	It("has no upper neighbour after the last leaf", func() {
		out, err := run("--lower", "4", "--mode", "node-id", "a", "b", "c", "d", "e")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("upper leaf 5: none"))
		Expect(out).To(ContainSubstring("PASS"))
	})

	It("rejects a lower index past the end", func() {
		_, err := run("--lower", "5", "a", "b", "c", "d", "e")
		Expect(err).To(MatchError(merkle.ErrIndexOutOfRange))
	})
})
