package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/aptos-labs/aptos-go-sdk"
)

// AccountIDLength is the byte length of a ledger account address
const AccountIDLength = 32

var ErrInvalidAccountID = errors.New("invalid account identifier")

// AccountID is a canonical ledger account address. Producers disagree on
// prefixes and on whether leading zeros are kept, so raw address strings are
// parsed once into an AccountID and compared only in this form.
type AccountID aptos.AccountAddress

// Canonicalize parses a raw address string in any of the forms the ledger,
// its indexer and wallets emit: optional 0x prefix, any case, leading zeros
// possibly truncated.
func Canonicalize(raw string) (AccountID, error) {
	digits := strings.TrimSpace(raw)
	if strings.HasPrefix(digits, "0X") {
		digits = "0x" + digits[2:]
	}
	if digits == "" {
		return AccountID{}, fmt.Errorf("%w: empty address %q", ErrInvalidAccountID, raw)
	}

	var address aptos.AccountAddress
	if err := address.ParseStringRelaxed(strings.ToLower(digits)); err != nil {
		return AccountID{}, fmt.Errorf("%w: %q: %v", ErrInvalidAccountID, raw, err)
	}
	return AccountID(address), nil
}

// MustCanonicalize is Canonicalize for addresses known to be well formed
func MustCanonicalize(raw string) AccountID {
	id, err := Canonicalize(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// SameAccount reports whether two raw address strings name the same account.
// Strings that fail to parse never match anything.
func SameAccount(a, b string) bool {
	idA, err := Canonicalize(a)
	if err != nil {
		return false
	}
	idB, err := Canonicalize(b)
	if err != nil {
		return false
	}
	return idA == idB
}

// String returns the full-width 0x-prefixed form
func (id AccountID) String() string {
	return id.Address().StringLong()
}

// Address returns the id as an SDK account address
func (id AccountID) Address() aptos.AccountAddress {
	return aptos.AccountAddress(id)
}

// Short returns the address without prefix or leading zeros
func (id AccountID) Short() string {
	short := strings.TrimLeft(hex.EncodeToString(id[:]), "0")
	if short == "" {
		return "0"
	}
	return short
}

// IsZero reports whether the id is the zero address
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// MarshalText renders the canonical form
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts any form Canonicalize accepts
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := Canonicalize(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
