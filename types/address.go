// Package types defines the domain model of the Verdict arbitration ledger
// as seen by the off-chain client: account addresses, resolution outcomes,
// round results, participant records, and the derived activity projection.
// These structs mirror the on-chain account layouts byte for byte; field
// order and widths must not be changed.
package types

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// AddressLength is the byte length of an on-chain account address.
const AddressLength = 32

// Address is a 32-byte on-chain account address.
type Address [AddressLength]byte

// ZeroAddress is the all-zero address, used when a role could not be
// determined.
var ZeroAddress = Address{}

// AddressFromString decodes the base58 text form of an address.
func AddressFromString(s string) (Address, error) {
	var a Address
	raw, err := base58.Decode(s)
	if err != nil {
		return a, errors.Wrap(err, "could not decode base58 address")
	}
	if len(raw) != AddressLength {
		return a, errors.Errorf("address must be %d bytes, got %d", AddressLength, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// String returns the base58 text form of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
