package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/sha3"
)

const fullAddress = "0x0a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f9"

type IdentityTestSuite struct {
	suite.Suite
	publicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentityTestSuite))
}

func (s *IdentityTestSuite) SetupTest() {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	s.publicKey = pub
	s.privateKey = priv
}

func (s *IdentityTestSuite) sign(message string) string {
	return "0x" + hex.EncodeToString(ed25519.Sign(s.privateKey, []byte(message)))
}

func (s *IdentityTestSuite) pubHex() string {
	return "0x" + hex.EncodeToString(s.publicKey)
}

func (s *IdentityTestSuite) TestSignThenVerify() {
	message := "By signing this transaction you'll be able to see your cards."

	s.True(VerifySignature(s.pubHex(), message, s.sign(message)))
	s.True(VerifySignature(strings.TrimPrefix(s.pubHex(), "0x"), message, s.sign(message)), "prefix is optional")
}

func (s *IdentityTestSuite) TestVerifyRejects() {
	message := "reveal my cards"
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)

	testCases := []struct {
		name      string
		publicKey string
		message   string
		signature string
	}{
		{name: "different message", publicKey: s.pubHex(), message: "reveal your cards", signature: s.sign(message)},
		{name: "different key", publicKey: hex.EncodeToString(otherPub), message: message, signature: s.sign(message)},
		{name: "malformed key hex", publicKey: "0xzz", message: message, signature: s.sign(message)},
		{name: "short key", publicKey: "0xabcd", message: message, signature: s.sign(message)},
		{name: "malformed signature hex", publicKey: s.pubHex(), message: message, signature: "not-hex"},
		{name: "short signature", publicKey: s.pubHex(), message: message, signature: "0x00"},
		{name: "empty", publicKey: "", message: "", signature: ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.False(VerifySignature(tc.publicKey, tc.message, tc.signature))
		})
	}
}

func (s *IdentityTestSuite) TestDeriveAccountID() {
	hasher := sha3.New256()
	hasher.Write(s.publicKey)
	hasher.Write([]byte{0x00})
	expected := "0x" + hex.EncodeToString(hasher.Sum(nil))

	id, err := DeriveAccountID(s.publicKey)
	s.Require().NoError(err)
	s.Equal(expected, id.String())

	again, err := NewVerifier().DeriveAccountID(s.pubHex())
	s.Require().NoError(err)
	s.Equal(id, again, "derivation is deterministic")

	_, err = DeriveAccountID([]byte{1, 2, 3})
	s.Error(err)
	_, err = NewVerifier().DeriveAccountID("0xnothex")
	s.Error(err)
}

func TestCanonicalizeEquivalentForms(t *testing.T) {
	want := MustCanonicalize(fullAddress)

	forms := []string{
		fullAddress,
		strings.TrimPrefix(fullAddress, "0x"),
		"0x" + strings.TrimPrefix(fullAddress, "0x0"),
		strings.TrimPrefix(fullAddress, "0x0"),
		strings.ToUpper(fullAddress[2:]),
		"0X" + fullAddress[2:],
		"  " + fullAddress + "\n",
	}
	for _, form := range forms {
		got, err := Canonicalize(form)
		require.NoError(t, err, form)
		assert.Equal(t, want, got, form)
		assert.True(t, SameAccount(form, fullAddress), form)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{fullAddress, "0x1", "abc", "0x0abc", "0x00000000000000000000000000000000000000000000000000000000000000ff"} {
		once, err := Canonicalize(raw)
		require.NoError(t, err)
		twice, err := Canonicalize(once.String())
		require.NoError(t, err)
		assert.Equal(t, once, twice, raw)

		fromShort, err := Canonicalize(once.Short())
		require.NoError(t, err)
		assert.Equal(t, once, fromShort, raw)
	}
}

func TestCanonicalizeRejects(t *testing.T) {
	for _, raw := range []string{"", "0x", "0xg1", "0x" + strings.Repeat("1", 65)} {
		_, err := Canonicalize(raw)
		assert.ErrorIs(t, err, ErrInvalidAccountID, raw)
	}
	assert.False(t, SameAccount("0x", "0x"), "unparseable addresses never match")
	assert.False(t, SameAccount("0x1", "0x2"))
}

func TestAccountIDText(t *testing.T) {
	id := MustCanonicalize("0x1")
	assert.Equal(t, "0x"+strings.Repeat("0", 63)+"1", id.String())
	assert.Equal(t, "1", id.Short())
	assert.False(t, id.IsZero())
	assert.Equal(t, "0", AccountID{}.Short())

	var parsed AccountID
	require.NoError(t, parsed.UnmarshalText([]byte("0x0001")))
	assert.Equal(t, id, parsed)
}

func TestAccountIDMatchesSDKAddress(t *testing.T) {
	id := MustCanonicalize("0x1")
	assert.Equal(t, aptos.AccountOne, id.Address())
	assert.Equal(t, aptos.AccountOne.StringLong(), id.String())

	var address aptos.AccountAddress
	require.NoError(t, address.ParseStringRelaxed(fullAddress))
	assert.Equal(t, AccountID(address), MustCanonicalize(fullAddress))
}
