package command

import "github.com/danmuck/walletctl/internal/merkle"

// Opcodes from the interrupted-execution wire contract.
const (
	CodeGetPreimage                 byte = 0x01
	CodeGetPubkeysInDerivationOrder byte = 0x20
	CodeGetMerkleLeafProof          byte = 0x41
	CodeGetMerkleLeafIndex          byte = 0x42
	CodeGetMoreElements             byte = 0xA0
)

const (
	// maxResponseLen is the hard ceiling on one response.
	maxResponseLen = 255

	// proofElemsPerResponse is how many 20-byte proof hashes fit one leaf
	// proof response after the leaf and the two count bytes.
	proofElemsPerResponse = (maxResponseLen - merkle.HashLen - 2) / merkle.HashLen

	// moreElementsCap bounds the element bytes of one drain response,
	// leaving room for the two count bytes.
	moreElementsCap = maxResponseLen - 2

	maxPreimageLen = 252
	maxPathLen     = 10

	hardenedKeyStart = 0x80000000
)

// KeyDeriver turns a serialized extended public key into the public key
// derived along an unhardened path. Implementations live outside this
// package; tests substitute fakes.
type KeyDeriver interface {
	DerivePublicKey(keyInfo string, path []uint32) ([]byte, error)
}

// sessionState is the registered state shared by every command: write-once
// registries plus the continuation queue. The interpreter owns exactly one
// and passes it to each execute call.
type sessionState struct {
	preimages map[merkle.Hash][]byte
	trees     map[merkle.Hash]*merkle.Tree
	keylists  map[merkle.Hash][]string
	queue     *elementQueue
	deriver   KeyDeriver
}

func newSessionState(deriver KeyDeriver) *sessionState {
	return &sessionState{
		preimages: make(map[merkle.Hash][]byte),
		trees:     make(map[merkle.Hash]*merkle.Tree),
		keylists:  make(map[merkle.Hash][]string),
		queue:     newElementQueue(),
		deriver:   deriver,
	}
}

// command is one opcode handler. execute receives the full request,
// opcode byte included, and returns the complete response body.
type command interface {
	code() byte
	execute(st *sessionState, req []byte) ([]byte, error)
}
