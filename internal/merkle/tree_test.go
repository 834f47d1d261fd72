package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLeaves(n int) []Hash {
	leaves := make([]Hash, n)
	for i := range leaves {
		leaves[i] = LeafHash([]byte(fmt.Sprintf("element-%d", i)))
	}
	return leaves
}

func TestEmptyTreeRootIsZero(t *testing.T) {
	tree := NewTree(nil)
	assert.Equal(t, Hash{}, tree.Root())
	assert.Equal(t, 0, tree.Size())
}

func TestSingleLeafRootIsLeaf(t *testing.T) {
	leaves := makeLeaves(1)
	tree := NewTree(leaves)
	assert.Equal(t, leaves[0], tree.Root())

	proof, err := tree.ProveLeaf(0)
	require.NoError(t, err)
	assert.Empty(t, proof)
}

func TestTwoLeafRoot(t *testing.T) {
	leaves := makeLeaves(2)
	tree := NewTree(leaves)
	assert.Equal(t, nodeHash(leaves[0], leaves[1]), tree.Root())
}

func TestThreeLeafRootSplitsLeft(t *testing.T) {
	// With three leaves the left subtree holds two leaves.
	leaves := makeLeaves(3)
	tree := NewTree(leaves)
	want := nodeHash(nodeHash(leaves[0], leaves[1]), leaves[2])
	assert.Equal(t, want, tree.Root())
}

func TestProofsReconstructRoot(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 13, 32, 100} {
		leaves := makeLeaves(n)
		tree := NewTree(leaves)
		for i := 0; i < n; i++ {
			proof, err := tree.ProveLeaf(i)
			require.NoError(t, err, "n=%d i=%d", n, i)
			root, err := RootFromProof(leaves[i], i, n, proof)
			require.NoError(t, err, "n=%d i=%d", n, i)
			assert.Equal(t, tree.Root(), root, "n=%d i=%d", n, i)
		}
	}
}

func TestProofRejectsWrongLength(t *testing.T) {
	leaves := makeLeaves(4)
	tree := NewTree(leaves)
	proof, err := tree.ProveLeaf(2)
	require.NoError(t, err)
	require.Len(t, proof, 2)

	_, err = RootFromProof(leaves[2], 2, 4, proof[:1])
	assert.ErrorIs(t, err, ErrProofLength)
	_, err = RootFromProof(leaves[2], 2, 4, append(proof, Hash{}))
	assert.ErrorIs(t, err, ErrProofLength)
}

func TestProveLeafOutOfRange(t *testing.T) {
	tree := NewTree(makeLeaves(3))
	_, err := tree.ProveLeaf(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.ProveLeaf(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLeafIndexSearchesByValue(t *testing.T) {
	leaves := makeLeaves(5)
	tree := NewTree(leaves)

	idx, ok := tree.LeafIndex(leaves[3])
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = tree.LeafIndex(LeafHash([]byte("absent")))
	assert.False(t, ok)
}

func TestNewTreeCopiesLeaves(t *testing.T) {
	leaves := makeLeaves(2)
	tree := NewTree(leaves)
	root := tree.Root()
	leaves[0] = Hash{}
	assert.Equal(t, root, tree.Root())
	got, err := tree.Leaf(0)
	require.NoError(t, err)
	assert.NotEqual(t, Hash{}, got)
}
