package merkle_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/prooftree/pkg/merkle"
)

var _ = Describe("Proof verification", func() {
	Describe("round trip", func() {
		for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 13, 128} {
			It(fmt.Sprintf("verifies every leaf of a %d leaf tree", n), func() {
				leaves := make([]any, n)
				for i := range leaves {
					leaves[i] = i * 7
				}
				t, err := merkle.Build(leaves)
				Expect(err).NotTo(HaveOccurred())

				for i := 0; i < n; i++ {
					p, err := t.Generate(i, nil)
					Expect(err).NotTo(HaveOccurred())

					ok, bad, err := t.Verify(p, i, merkle.ModeDigest, nil)
					Expect(err).NotTo(HaveOccurred())
					Expect(ok).To(BeTrue(), "leaf %d", i)
					Expect(bad).To(BeNil())

					ok, bad, err = t.Verify(p, i, merkle.ModeNodeID, nil)
					Expect(err).NotTo(HaveOccurred())
					Expect(ok).To(BeTrue(), "leaf %d by node id", i)
					Expect(bad).To(BeNil())

					Expect(merkle.VerifyDetached(t.Hasher(), p.LeafHash, p.Steps, t.RootHash())).To(BeTrue())
				}
			})
		}
	})

	Describe("on a 5 leaf tree", func() {
		var (
			t *merkle.Tree
			d *merkle.Diagnostics
		)

		BeforeEach(func() {
			var err error
			t, err = merkle.Build([]any{"0", "1", "2", "3", "4"}, merkle.WithHasher(merkle.Blake3Hasher{}))
			Expect(err).NotTo(HaveOccurred())
			d = merkle.NewDiagnostics()
		})

		It("reports the exact corrupted ancestor", func() {
			p, err := t.Generate(1, d)
			Expect(err).NotTo(HaveOccurred())

			// Node 7 is the grandparent of leaf 1.
			Expect(t.Corrupt(7, "deadbeef")).To(Succeed())

			ok, bad, err := t.Verify(p, 1, merkle.ModeDigest, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(bad).NotTo(BeNil())
			Expect(bad.ID).To(Equal(merkle.NodeID(7)))
			Expect(d.Label(7)).To(Equal(merkle.LabelError))
		})

		It("reports the first divergent parent for a tampered proof entry", func() {
			p, err := t.Generate(1, nil)
			Expect(err).NotTo(HaveOccurred())
			p.Digests[1] = "00"

			ok, bad, err := t.Verify(p, 1, merkle.ModeDigest, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(bad.ID).To(Equal(merkle.NodeID(7)))
		})

		It("fails a proof that is too short without naming a node", func() {
			p, err := t.Generate(1, nil)
			Expect(err).NotTo(HaveOccurred())
			p.Digests = p.Digests[:2]

			ok, bad, err := t.Verify(p, 1, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(bad).To(BeNil())
		})

		It("fails a proof that is too long without naming a node", func() {
			p, err := t.Generate(4, nil)
			Expect(err).NotTo(HaveOccurred())
			p.Digests = append(p.Digests, "extra")

			ok, bad, err := t.Verify(p, 4, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(bad).To(BeNil())
		})

		It("rejects an index other than the one last generated", func() {
			p, err := t.Generate(2, d)
			Expect(err).NotTo(HaveOccurred())

			// The proof for 2 is otherwise valid for 2, but 3 was requested.
			ok, bad, err := t.Verify(p, 3, merkle.ModeDigest, d)
			Expect(err).To(MatchError(merkle.ErrProofIdentityMismatch))
			Expect(ok).To(BeFalse())
			Expect(bad.ID).To(Equal(merkle.NodeID(3)))
			Expect(d.Label(3)).To(Equal(merkle.LabelError))
		})

		It("rejects a valid proof once a newer one was generated", func() {
			p, err := t.Generate(2, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = t.Generate(0, nil)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = t.Verify(p, 2, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrProofIdentityMismatch))
		})

		It("rejects verification before any proof was generated", func() {
			_, _, err := t.Verify(&merkle.Proof{}, 0, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrProofIdentityMismatch))
		})

		It("rejects indices out of range", func() {
			_, _, err := t.Verify(nil, -1, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrIndexOutOfRange))

			_, _, err = t.Verify(nil, 5, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrIndexOutOfRange))
		})

		It("requires a built tree", func() {
			_, _, err := merkle.New().Verify(nil, 0, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrTreeNotBuilt))
		})

		It("rejects node ids outside the arena", func() {
			p, err := t.Generate(1, nil)
			Expect(err).NotTo(HaveOccurred())
			p.NodeIDs[0] = 99

			_, _, err = t.Verify(p, 1, merkle.ModeNodeID, nil)
			Expect(err).To(MatchError(merkle.ErrUnknownNode))
		})

		It("clears earlier error labels but keeps the proof labels", func() {
			p, err := t.Generate(1, d)
			Expect(err).NotTo(HaveOccurred())
			bad := *p
			bad.Digests = []string{"x", p.Digests[1], p.Digests[2]}

			ok, _, err := t.Verify(&bad, 1, merkle.ModeDigest, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(d.WithLabel(merkle.LabelError)).To(Equal([]merkle.NodeID{5}))

			ok, _, err = t.Verify(p, 1, merkle.ModeDigest, d)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(d.WithLabel(merkle.LabelError)).To(BeEmpty())
			Expect(d.Label(1)).To(Equal(merkle.LabelTarget))
			Expect(d.Label(0)).To(Equal(merkle.LabelWitness))
		})

		It("can be repeated with the same outcome", func() {
			p, err := t.Generate(3, nil)
			Expect(err).NotTo(HaveOccurred())

			for range 3 {
				ok, _, err := t.Verify(p, 3, merkle.ModeDigest, d)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			}
		})
	})

	Describe("brackets", func() {
		var t *merkle.Tree

		BeforeEach(func() {
			var err error
			t, err = merkle.Build([]any{"a", "b", "c", "d", "e"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("verifies both halves independently", func() {
			b, err := t.GenerateBracket(1, nil)
			Expect(err).NotTo(HaveOccurred())

			ok, _, err := t.Verify(b.Lower, 1, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, _, err = t.Verify(b.Upper, 2, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, _, err = t.VerifyBracket(b, merkle.ModeNodeID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("accepts an empty upper half only after the last leaf", func() {
			b, err := t.GenerateBracket(4, nil)
			Expect(err).NotTo(HaveOccurred())

			ok, _, err := t.VerifyBracket(b, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			b, err = t.Prove(merkle.ExistingLeaf{Index: 2}, nil)
			Expect(err).NotTo(HaveOccurred())

			ok, _, err = t.VerifyBracket(b, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("rejects a bracket without a lower half", func() {
			_, err := t.GenerateBracket(1, nil)
			Expect(err).NotTo(HaveOccurred())

			ok, bad, err := t.VerifyBracket(&merkle.Bracket{}, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(bad).To(BeNil())

			ok, _, err = t.VerifyBracket(nil, merkle.ModeDigest, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("does not accept indices outside the bracket", func() {
			_, err := t.GenerateBracket(1, nil)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = t.Verify(&merkle.Proof{}, 3, merkle.ModeDigest, nil)
			Expect(err).To(MatchError(merkle.ErrProofIdentityMismatch))
		})
	})

	Describe("VerifyDetached", func() {
		var (
			t *merkle.Tree
			p *merkle.Proof
		)

		BeforeEach(func() {
			var err error
			t, err = merkle.Build([]any{"a", "b", "c"})
			Expect(err).NotTo(HaveOccurred())
			p, err = t.Generate(0, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts the generated steps", func() {
			Expect(merkle.VerifyDetached(t.Hasher(), p.LeafHash, p.Steps, t.RootHash())).To(BeTrue())
		})

		It("rejects a flipped side", func() {
			steps := append([]merkle.Step(nil), p.Steps...)
			steps[0].Side = merkle.SideLeft

			Expect(merkle.VerifyDetached(t.Hasher(), p.LeafHash, steps, t.RootHash())).To(BeFalse())
		})

		It("rejects a missing side", func() {
			steps := append([]merkle.Step(nil), p.Steps...)
			steps[1].Side = merkle.SideNone

			Expect(merkle.VerifyDetached(t.Hasher(), p.LeafHash, steps, t.RootHash())).To(BeFalse())
		})

		It("rejects another root", func() {
			Expect(merkle.VerifyDetached(t.Hasher(), p.LeafHash, p.Steps, "ff")).To(BeFalse())
		})
	})
})
