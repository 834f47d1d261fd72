package command

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/danmuck/walletctl/internal/merkle"
)

// Interpreter dispatches interrupted-execution requests to their opcode's
// command and owns the session state the commands answer from.
//
// It is synchronous: one Execute call runs to completion before the next
// may start, and the protocol's empty-queue precondition (not a lock) keeps
// proof transfers single-flight.
type Interpreter struct {
	state    *sessionState
	commands map[byte]command
	log      zerolog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger attaches a structured logger for registration events. The
// default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(i *Interpreter) {
		i.log = log
	}
}

// New builds an interpreter with empty registries and an empty continuation
// queue. The deriver serves GET_PUBKEYS_IN_DERIVATION_ORDER.
func New(deriver KeyDeriver, opts ...Option) *Interpreter {
	i := &Interpreter{
		state:    newSessionState(deriver),
		commands: make(map[byte]command),
		log:      zerolog.Nop(),
	}
	for _, cmd := range []command{
		getPreimage{},
		getPubkeysInDerivationOrder{},
		getMerkleLeafProof{},
		getMerkleLeafIndex{},
		getMoreElements{},
	} {
		i.commands[cmd.code()] = cmd
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Execute answers one device request. The first byte selects the command;
// the command sees the full request. Failures leave the session state
// untouched.
func (i *Interpreter) Execute(req []byte) ([]byte, error) {
	if len(req) == 0 {
		return nil, ErrEmptyRequest
	}
	cmd, ok := i.commands[req[0]]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, req[0])
	}
	return cmd.execute(i.state, req)
}

// AddKnownPreimage registers a value under its RIPEMD160 hash and returns
// that hash. Values longer than 252 bytes cannot be served in a
// length-prefixed response and are rejected.
func (i *Interpreter) AddKnownPreimage(value []byte) (merkle.Hash, error) {
	if len(value) > maxPreimageLen {
		return merkle.Hash{}, fmt.Errorf("%w: %d bytes", ErrPreimageTooLong, len(value))
	}
	own := make([]byte, len(value))
	copy(own, value)
	h := merkle.Sum(own)
	i.state.preimages[h] = own
	i.log.Debug().Stringer("hash", h).Int("len", len(own)).Msg("registered preimage")
	return h, nil
}

// AddKnownList registers an ordered element list as a Merkle tree keyed by
// its root. Every element's prefixed preimage (0x00 || element) is also
// registered, so the device can ask for leaf preimages by hash.
func (i *Interpreter) AddKnownList(elements [][]byte) (merkle.Hash, error) {
	leaves := make([]merkle.Hash, len(elements))
	for n, el := range elements {
		prefixed := make([]byte, 0, len(el)+1)
		prefixed = append(prefixed, 0x00)
		prefixed = append(prefixed, el...)
		if _, err := i.AddKnownPreimage(prefixed); err != nil {
			return merkle.Hash{}, fmt.Errorf("element %d: %w", n, err)
		}
		leaves[n] = merkle.LeafHash(el)
	}
	tree := merkle.NewTree(leaves)
	root := tree.Root()
	i.state.trees[root] = tree
	i.log.Debug().Stringer("root", root).Int("size", tree.Size()).Msg("registered merkle tree")
	return root, nil
}

// AddKnownPubkeyList registers an ordered list of public key descriptors as
// a Merkle tree and keeps the descriptor strings for the sort command.
func (i *Interpreter) AddKnownPubkeyList(keysInfo []string) (merkle.Hash, error) {
	elements := make([][]byte, len(keysInfo))
	for n, info := range keysInfo {
		elements[n] = []byte(info)
	}
	root, err := i.AddKnownList(elements)
	if err != nil {
		return merkle.Hash{}, err
	}
	own := make([]string, len(keysInfo))
	copy(own, keysInfo)
	i.state.keylists[root] = own
	i.log.Debug().Stringer("root", root).Int("keys", len(own)).Msg("registered pubkey list")
	return root, nil
}

// AddKnownMapping registers a byte-to-byte mapping as two parallel Merkle
// trees: the keys sorted lexicographically, and their values in the same
// order. It returns the key root and the value root.
func (i *Interpreter) AddKnownMapping(mapping map[string][]byte) (merkle.Hash, merkle.Hash, error) {
	sorted := make([]string, 0, len(mapping))
	for k := range mapping {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	keys := make([][]byte, len(sorted))
	values := make([][]byte, len(sorted))
	for n, k := range sorted {
		keys[n] = []byte(k)
		values[n] = mapping[k]
	}
	keyRoot, err := i.AddKnownList(keys)
	if err != nil {
		return merkle.Hash{}, merkle.Hash{}, err
	}
	valueRoot, err := i.AddKnownList(values)
	if err != nil {
		return merkle.Hash{}, merkle.Hash{}, err
	}
	return keyRoot, valueRoot, nil
}
