package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
)

// Verifier checks identity proofs and maps public keys to accounts
type Verifier interface {
	VerifySignature(publicKeyHex, message, signatureHex string) bool
	DeriveAccountID(publicKeyHex string) (AccountID, error)
}

// Ed25519Verifier implements Verifier for single-key Ed25519 accounts
type Ed25519Verifier struct{}

// NewVerifier returns the Ed25519 verifier
func NewVerifier() *Ed25519Verifier {
	return &Ed25519Verifier{}
}

// VerifySignature implements Verifier
func (Ed25519Verifier) VerifySignature(publicKeyHex, message, signatureHex string) bool {
	return VerifySignature(publicKeyHex, message, signatureHex)
}

// DeriveAccountID implements Verifier
func (Ed25519Verifier) DeriveAccountID(publicKeyHex string) (AccountID, error) {
	publicKey, err := DecodeHex(publicKeyHex)
	if err != nil {
		return AccountID{}, fmt.Errorf("decoding public key: %w", err)
	}
	return DeriveAccountID(publicKey)
}

// DeriveAccountID returns the account address whose authentication key is the
// single-key Ed25519 key publicKey
func DeriveAccountID(publicKey []byte) (AccountID, error) {
	key, err := parsePublicKey(publicKey)
	if err != nil {
		return AccountID{}, err
	}

	var address aptos.AccountAddress
	address.FromAuthKey(key.AuthKey())
	return AccountID(address), nil
}

// VerifySignature reports whether signatureHex is a valid Ed25519 signature by
// publicKeyHex over the UTF-8 bytes of message. Malformed input yields false.
func VerifySignature(publicKeyHex, message, signatureHex string) bool {
	publicKeyBytes, err := DecodeHex(publicKeyHex)
	if err != nil {
		return false
	}
	key, err := parsePublicKey(publicKeyBytes)
	if err != nil {
		return false
	}

	signatureBytes, err := DecodeHex(signatureHex)
	if err != nil || len(signatureBytes) != ed25519.SignatureSize {
		return false
	}
	signature := &crypto.Ed25519Signature{}
	if err := signature.FromBytes(signatureBytes); err != nil {
		return false
	}

	return key.Verify([]byte(message), signature)
}

func parsePublicKey(publicKey []byte) (*crypto.Ed25519PublicKey, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))
	}
	key := &crypto.Ed25519PublicKey{}
	if err := key.FromBytes(publicKey); err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return key, nil
}

// DecodeHex decodes a hex string with or without a 0x prefix
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
