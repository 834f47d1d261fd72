package keys

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BIP32 test vector 1, chain m.
const testXpub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

func TestDeriveEmptyPathReturnsOwnKey(t *testing.T) {
	got, err := Deriver{}.DerivePublicKey(testXpub, nil)
	require.NoError(t, err)
	want, _ := hex.DecodeString("0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2")
	assert.Equal(t, want, got)
}

func TestDeriveUnhardenedPath(t *testing.T) {
	d := Deriver{}
	got, err := d.DerivePublicKey(testXpub, []uint32{0, 1})
	require.NoError(t, err)
	require.Len(t, got, 33)
	assert.Contains(t, []byte{0x02, 0x03}, got[0])

	// Deterministic, and distinct from other paths.
	again, err := d.DerivePublicKey(testXpub, []uint32{0, 1})
	require.NoError(t, err)
	assert.Equal(t, got, again)

	other, err := d.DerivePublicKey(testXpub, []uint32{0, 2})
	require.NoError(t, err)
	assert.NotEqual(t, got, other)
}

func TestDeriveRejectsHardenedStep(t *testing.T) {
	_, err := Deriver{}.DerivePublicKey(testXpub, []uint32{0x80000000})
	assert.ErrorIs(t, err, ErrHardenedStep)
}

func TestDeriveRejectsGarbageKey(t *testing.T) {
	_, err := Deriver{}.DerivePublicKey("not-an-xpub", nil)
	assert.Error(t, err)
}
