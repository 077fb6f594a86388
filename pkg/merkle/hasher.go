package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hasher produces the hex digests stored in tree nodes.
//
// Node receives the hex digests of both children
// and must hash their plain ordered concatenation,
// so that swapping children changes the parent digest.
type Hasher interface {
	Leaf(canonical string) string
	Node(left, right string) string
	Name() string
}

// SHA256Hasher is the default [Hasher].
type SHA256Hasher struct{}

func (SHA256Hasher) Leaf(canonical string) string {
	h := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(h[:])
}

func (SHA256Hasher) Node(left, right string) string {
	h := sha256.New()
	_, _ = h.Write([]byte(left))
	_, _ = h.Write([]byte(right))
	return hex.EncodeToString(h.Sum(nil))
}

func (SHA256Hasher) Name() string { return "sha256" }

// Blake3Hasher is a [Hasher] backed by 256-bit BLAKE3 digests.
type Blake3Hasher struct{}

func (Blake3Hasher) Leaf(canonical string) string {
	h := blake3.Sum256([]byte(canonical))
	return hex.EncodeToString(h[:])
}

func (Blake3Hasher) Node(left, right string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(left))
	_, _ = h.Write([]byte(right))
	return hex.EncodeToString(h.Sum(nil))
}

func (Blake3Hasher) Name() string { return "blake3" }

// HasherByName resolves a hasher from its configured name.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "blake3":
		return Blake3Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}
