package command

import (
	"fmt"

	"github.com/danmuck/walletctl/internal/merkle"
	"github.com/danmuck/walletctl/internal/wire"
)

// getPreimage answers GET_PREIMAGE: a 20-byte hash looked up in the
// preimage registry, returned with a one-byte length prefix.
type getPreimage struct{}

func (getPreimage) code() byte {
	return CodeGetPreimage
}

func (getPreimage) execute(st *sessionState, req []byte) ([]byte, error) {
	c := wire.NewCursor(req[1:])
	hb, err := c.ReadBytes(merkle.HashLen)
	if err != nil {
		return nil, malformed(err)
	}
	if err := c.AssertEmpty(); err != nil {
		return nil, malformed(err)
	}

	var key merkle.Hash
	copy(key[:], hb)
	preimage, ok := st.preimages[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreimage, key)
	}

	resp := make([]byte, 0, 1+len(preimage))
	resp = append(resp, byte(len(preimage)))
	resp = append(resp, preimage...)
	return resp, nil
}
