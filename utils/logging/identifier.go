package logging

import (
	"github.com/onflow/flight-surety/model/surety"
)

// ID returns the bytes of an identifier for zerolog's Hex fields.
func ID(id surety.Identifier) []byte {
	return id[:]
}

// Address returns the bytes of an address for zerolog's Hex fields.
func Address(address surety.Address) []byte {
	return address[:]
}

func Addresses(addresses []surety.Address) []string {
	ss := make([]string, 0, len(addresses))
	for _, address := range addresses {
		ss = append(ss, address.String())
	}
	return ss
}
