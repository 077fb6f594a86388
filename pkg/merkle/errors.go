package merkle

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when building a tree from zero leaves.
	ErrEmptyInput = errors.New("merkle: no leaves to build from")

	// ErrAlreadyBuilt is returned when Build is called on a built tree.
	ErrAlreadyBuilt = errors.New("merkle: tree already built")

	// ErrTreeNotBuilt is returned by proof operations on an unbuilt tree.
	ErrTreeNotBuilt = errors.New("merkle: tree not built")

	// ErrIndexOutOfRange is returned for a leaf index outside [0, leaf count).
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

	// ErrProofIdentityMismatch is returned when a proof is verified
	// against an index other than the ones issued by the latest generate call.
	ErrProofIdentityMismatch = errors.New("merkle: proof was not generated for this index")

	// ErrUnknownNode is returned when a node-id proof entry is not in the arena.
	ErrUnknownNode = errors.New("merkle: unknown node id")

	// ErrUnknownHasher is returned for an unsupported hasher name.
	ErrUnknownHasher = errors.New("merkle: unknown hasher")
)

// IndexError describes an out of range leaf index.
// It matches [ErrIndexOutOfRange] with errors.Is.
type IndexError struct {
	Index int
	Count int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("merkle: leaf index %d out of range [0, %d)", e.Index, e.Count)
}

func (e IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
