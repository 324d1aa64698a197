package surety

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the size of an account address.
const AddressLength = 8

// Address represents the 8 byte address of an account on the ledger. Addresses
// identify airlines, passengers, oracles and the contract itself; the ledger
// guarantees that the caller address of a transaction cannot be forged.
type Address [AddressLength]byte

var (
	// EmptyAddress is the zero address; no one owns it.
	EmptyAddress = Address{}
	// ContractAddress is the account that holds the escrowed value.
	ContractAddress = Uint64ToAddress(1)
)

// HexToAddress converts a hex string to an Address.
func HexToAddress(h string) (Address, error) {
	h = strings.TrimPrefix(h, "0x")
	b, err := hex.DecodeString(h)
	if err != nil {
		return EmptyAddress, fmt.Errorf("malformed address %q: %w", h, err)
	}
	if len(b) > AddressLength {
		return EmptyAddress, fmt.Errorf("address %q exceeds %d bytes", h, AddressLength)
	}
	return BytesToAddress(b), nil
}

// MustHexToAddress converts a hex string to an Address and panics on malformed input.
func MustHexToAddress(h string) Address {
	a, err := HexToAddress(h)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAddress returns Address with value b.
//
// If b is larger than 8, b will be cropped from the left.
// If b is smaller than 8, b will be appended by zeroes at the front.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// Uint64ToAddress returns an address with value v.
func Uint64ToAddress(v uint64) Address {
	var b [AddressLength]byte
	binary.BigEndian.PutUint64(b[:], v)
	return Address(b)
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string {
	return hex.EncodeToString(a.Bytes())
}

// String returns the string representation of the address.
func (a Address) String() string {
	return a.Hex()
}

// IsEmpty returns true for the zero address.
func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.Hex())), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	parsed, err := HexToAddress(strings.Trim(string(data), "\""))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalText lets addresses be used as YAML scalars.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := HexToAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}
