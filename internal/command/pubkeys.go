package command

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/walletctl/internal/merkle"
	"github.com/danmuck/walletctl/internal/wire"
)

// getPubkeysInDerivationOrder answers GET_PUBKEYS_IN_DERIVATION_ORDER: it
// derives each requested key along the given unhardened path and returns
// the requested indices reordered by ascending derived public key bytes.
// Ties keep the request order.
type getPubkeysInDerivationOrder struct{}

func (getPubkeysInDerivationOrder) code() byte {
	return CodeGetPubkeysInDerivationOrder
}

func (getPubkeysInDerivationOrder) execute(st *sessionState, req []byte) ([]byte, error) {
	c := wire.NewCursor(req[1:])
	rootB, err := c.ReadBytes(merkle.HashLen)
	if err != nil {
		return nil, malformed(err)
	}
	var root merkle.Hash
	copy(root[:], rootB)
	keysInfo, ok := st.keylists[root]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoot, root)
	}

	treeSize, err := c.ReadUint32()
	if err != nil {
		return nil, malformed(err)
	}
	if int(treeSize) != len(keysInfo) {
		return nil, fmt.Errorf("%w: tree size %d, registered list has %d keys", ErrMalformedRequest, treeSize, len(keysInfo))
	}

	pathLen, err := c.ReadUint8()
	if err != nil {
		return nil, malformed(err)
	}
	if pathLen > maxPathLen {
		return nil, fmt.Errorf("%w: derivation path length %d exceeds %d", ErrMalformedRequest, pathLen, maxPathLen)
	}
	path := make([]uint32, pathLen)
	for n := range path {
		step, err := c.ReadUint32()
		if err != nil {
			return nil, malformed(err)
		}
		if step >= hardenedKeyStart {
			return nil, fmt.Errorf("%w: hardened derivation step 0x%08X", ErrMalformedRequest, step)
		}
		path[n] = step
	}

	nIndexes, err := c.ReadUint8()
	if err != nil {
		return nil, malformed(err)
	}
	indexes := make([]byte, nIndexes)
	for n := range indexes {
		idx, err := c.ReadUint8()
		if err != nil {
			return nil, malformed(err)
		}
		if uint32(idx) >= treeSize {
			return nil, fmt.Errorf("%w: key index %d not below tree size %d", ErrMalformedRequest, idx, treeSize)
		}
		indexes[n] = idx
	}
	if err := c.AssertEmpty(); err != nil {
		return nil, malformed(err)
	}

	type indexedKey struct {
		index   byte
		derived []byte
	}
	keys := make([]indexedKey, len(indexes))
	for n, idx := range indexes {
		derived, err := st.deriver.DerivePublicKey(stripKeyOrigin(keysInfo[idx]), path)
		if err != nil {
			return nil, fmt.Errorf("%w: key index %d: %v", ErrDerivation, idx, err)
		}
		keys[n] = indexedKey{index: idx, derived: derived}
	}
	sort.SliceStable(keys, func(a, b int) bool {
		return bytes.Compare(keys[a].derived, keys[b].derived) < 0
	})

	resp := make([]byte, 0, 1+len(keys))
	resp = append(resp, nIndexes)
	for _, k := range keys {
		resp = append(resp, k.index)
	}
	return resp, nil
}

// stripKeyOrigin drops a bracketed key origin prefix, e.g.
// "[f5acc2fd/48'/1'/0']xpub..." becomes "xpub...".
func stripKeyOrigin(keyInfo string) string {
	if n := strings.IndexByte(keyInfo, ']'); n >= 0 {
		return keyInfo[n+1:]
	}
	return keyInfo
}
