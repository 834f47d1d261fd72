package command

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/walletctl/internal/merkle"
	"github.com/danmuck/walletctl/internal/wire"
)

// getMerkleLeafProof answers GET_MERKLE_LEAF_PROOF: the leaf hash plus as
// much of its inclusion proof as fits one response. Proof hashes that do
// not fit are pushed onto the continuation queue, root-adjacent end last,
// so repeated drains hand the device the rest in leaf-to-root order.
type getMerkleLeafProof struct{}

func (getMerkleLeafProof) code() byte {
	return CodeGetMerkleLeafProof
}

func (getMerkleLeafProof) execute(st *sessionState, req []byte) ([]byte, error) {
	c := wire.NewCursor(req[1:])
	rootB, err := c.ReadBytes(merkle.HashLen)
	if err != nil {
		return nil, malformed(err)
	}
	treeSize, err := c.ReadUint32()
	if err != nil {
		return nil, malformed(err)
	}
	leafIndex, err := c.ReadUint32()
	if err != nil {
		return nil, malformed(err)
	}
	if err := c.AssertEmpty(); err != nil {
		return nil, malformed(err)
	}

	var root merkle.Hash
	copy(root[:], rootB)
	tree, ok := st.trees[root]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoot, root)
	}
	if leafIndex >= treeSize {
		return nil, fmt.Errorf("%w: leaf index %d not below tree size %d", ErrMalformedRequest, leafIndex, treeSize)
	}
	if int(treeSize) != tree.Size() {
		return nil, fmt.Errorf("%w: tree size %d, registered tree has %d leaves", ErrMalformedRequest, treeSize, tree.Size())
	}
	// A new proof transfer must not start while a previous one is still
	// being drained.
	if !st.queue.empty() {
		return nil, ErrQueueNotEmpty
	}

	leaf, err := tree.Leaf(int(leafIndex))
	if err != nil {
		return nil, malformed(err)
	}
	proof, err := tree.ProveLeaf(int(leafIndex))
	if err != nil {
		return nil, malformed(err)
	}

	total := len(proof)
	sent := proofElemsPerResponse
	if total < sent {
		sent = total
	}
	for _, h := range proof[sent:] {
		el := make([]byte, merkle.HashLen)
		copy(el, h[:])
		st.queue.push(el)
	}

	resp := make([]byte, 0, merkle.HashLen+2+sent*merkle.HashLen)
	resp = append(resp, leaf[:]...)
	resp = append(resp, byte(total), byte(sent))
	for _, h := range proof[:sent] {
		resp = append(resp, h[:]...)
	}
	return resp, nil
}

// getMerkleLeafIndex answers GET_MERKLE_LEAF_INDEX: the position of the
// leaf whose hash equals the requested one. The search compares leaf values
// against the target; a tree without such a leaf is a distinct failure from
// an unknown tree.
type getMerkleLeafIndex struct{}

func (getMerkleLeafIndex) code() byte {
	return CodeGetMerkleLeafIndex
}

func (getMerkleLeafIndex) execute(st *sessionState, req []byte) ([]byte, error) {
	c := wire.NewCursor(req[1:])
	rootB, err := c.ReadBytes(merkle.HashLen)
	if err != nil {
		return nil, malformed(err)
	}
	leafB, err := c.ReadBytes(merkle.HashLen)
	if err != nil {
		return nil, malformed(err)
	}
	if err := c.AssertEmpty(); err != nil {
		return nil, malformed(err)
	}

	var root, target merkle.Hash
	copy(root[:], rootB)
	copy(target[:], leafB)
	tree, ok := st.trees[root]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoot, root)
	}
	index, ok := tree.LeafIndex(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s in tree %s", ErrLeafNotFound, target, root)
	}

	resp := make([]byte, 4)
	binary.BigEndian.PutUint32(resp, uint32(index))
	return resp, nil
}
