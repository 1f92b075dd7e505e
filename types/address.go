package types

import (
	"fmt"

	"ledgerscan/common"
)

// AddressSize is the length in bytes of an account identifier.
// Identifiers are ed25519 public keys.
const AddressSize = 32

// Address is an opaque fixed-length account identifier. The zero value
// means "no counterparty" (coinbase source, deployment target).
type Address [AddressSize]byte

// AddressFromBytes copies b into an Address, rejecting wrong lengths.
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressSize {
		return addr, fmt.Errorf("invalid address length: %d", len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// AddressFromBase58 decodes a base58 account string into an Address.
func AddressFromBase58(s string) (Address, error) {
	b, err := common.DecodeBase58ToBytes(s)
	if err != nil {
		return Address{}, err
	}
	return AddressFromBytes(b)
}

// Bytes returns a copy of the raw identifier.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

// IsZero reports whether the address is the all-zero "no counterparty" value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String renders the address as base58 for display and wire encoding.
func (a Address) String() string {
	return common.EncodeBytesToBase58(a[:])
}

// MarshalText encodes the address as base58.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a base58 account string.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromBase58(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
