// Package keys derives public keys from serialized extended public keys.
package keys

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var ErrHardenedStep = errors.New("keys: hardened derivation step requires a private key")

// Deriver implements command.KeyDeriver on top of BIP32 public derivation.
// The zero value is ready to use.
type Deriver struct{}

// DerivePublicKey parses a base58 extended public key and derives along the
// given unhardened path, returning the compressed public key bytes of the
// final node.
func (Deriver) DerivePublicKey(keyInfo string, path []uint32) ([]byte, error) {
	key, err := hdkeychain.NewKeyFromString(keyInfo)
	if err != nil {
		return nil, fmt.Errorf("keys: parse extended key: %w", err)
	}
	for _, step := range path {
		if step >= hdkeychain.HardenedKeyStart {
			return nil, ErrHardenedStep
		}
		key, err = key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("keys: derive step %d: %w", step, err)
		}
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("keys: extract public key: %w", err)
	}
	return pub.SerializeCompressed(), nil
}
