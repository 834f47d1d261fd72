// Package merkle implements the RIPEMD160 Merkle tree used to commit to
// ordered element lists shared with the device.
//
// Leaves and interior nodes are domain-separated: a leaf hash is
// RIPEMD160(0x00 || element) and an interior node is
// RIPEMD160(0x01 || left || right). A tree over n > 1 leaves splits at the
// largest power of two strictly less than n.
package merkle

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/ripemd160"
)

// HashLen is the byte length of every digest in the tree.
const HashLen = 20

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

var (
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
	ErrProofLength     = errors.New("merkle: wrong proof length")
)

// Hash is a RIPEMD160 digest.
type Hash [HashLen]byte

func (h Hash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// LeafHash hashes an element preimage into its leaf digest.
func LeafHash(element []byte) Hash {
	return sum(leafPrefix, element)
}

// Sum is the plain RIPEMD160 digest of data, with no domain prefix. It keys
// the preimage registry.
func Sum(data []byte) Hash {
	h := ripemd160.New()
	h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func nodeHash(left, right Hash) Hash {
	h := ripemd160.New()
	h.Write([]byte{nodePrefix})
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func sum(prefix byte, data []byte) Hash {
	h := ripemd160.New()
	h.Write([]byte{prefix})
	h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Tree is an immutable Merkle tree over a fixed sequence of leaf hashes.
type Tree struct {
	leaves []Hash
	root   Hash
}

// NewTree builds a tree over the given leaf hashes. The empty tree has an
// all-zero root.
func NewTree(leaves []Hash) *Tree {
	own := make([]Hash, len(leaves))
	copy(own, leaves)
	return &Tree{leaves: own, root: rootOf(own)}
}

func (t *Tree) Size() int {
	return len(t.leaves)
}

func (t *Tree) Root() Hash {
	return t.root
}

// Leaf returns the leaf hash at index i.
func (t *Tree) Leaf(i int) (Hash, error) {
	if i < 0 || i >= len(t.leaves) {
		return Hash{}, ErrIndexOutOfRange
	}
	return t.leaves[i], nil
}

// LeafIndex finds the position of the leaf with the given hash. It compares
// every leaf against the target value; duplicate leaves resolve to the
// lowest index.
func (t *Tree) LeafIndex(target Hash) (int, bool) {
	for i, leaf := range t.leaves {
		if leaf == target {
			return i, true
		}
	}
	return 0, false
}

// ProveLeaf returns the inclusion proof for leaf i: the sibling hash at each
// level, ordered from the leaf up to the root.
func (t *Tree) ProveLeaf(i int) ([]Hash, error) {
	if i < 0 || i >= len(t.leaves) {
		return nil, ErrIndexOutOfRange
	}
	return prove(t.leaves, i), nil
}

func rootOf(leaves []Hash) Hash {
	switch len(leaves) {
	case 0:
		return Hash{}
	case 1:
		return leaves[0]
	}
	k := split(len(leaves))
	return nodeHash(rootOf(leaves[:k]), rootOf(leaves[k:]))
}

func prove(leaves []Hash, i int) []Hash {
	if len(leaves) == 1 {
		return nil
	}
	k := split(len(leaves))
	if i < k {
		return append(prove(leaves[:k], i), rootOf(leaves[k:]))
	}
	return append(prove(leaves[k:], i-k), rootOf(leaves[:k]))
}

// RootFromProof recomputes the root committed to by an inclusion proof for
// the given leaf, index and tree size. It fails if the proof length does not
// match the tree shape.
func RootFromProof(leaf Hash, index, size int, proof []Hash) (Hash, error) {
	if index < 0 || index >= size {
		return Hash{}, ErrIndexOutOfRange
	}
	if size == 1 {
		if len(proof) != 0 {
			return Hash{}, ErrProofLength
		}
		return leaf, nil
	}
	if len(proof) == 0 {
		return Hash{}, ErrProofLength
	}
	k := split(size)
	sibling := proof[len(proof)-1]
	rest := proof[:len(proof)-1]
	if index < k {
		sub, err := RootFromProof(leaf, index, k, rest)
		if err != nil {
			return Hash{}, err
		}
		return nodeHash(sub, sibling), nil
	}
	sub, err := RootFromProof(leaf, index-k, size-k, rest)
	if err != nil {
		return Hash{}, err
	}
	return nodeHash(sibling, sub), nil
}

// split returns the largest power of two strictly less than n. n must be > 1.
func split(n int) int {
	k := 1
	for k*2 < n {
		k *= 2
	}
	return k
}
