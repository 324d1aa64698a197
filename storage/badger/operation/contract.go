package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

func InsertOperatingStatus(operational bool) func(*badger.Txn) error {
	return insert(makePrefix(codeOperatingStatus), operational)
}

func UpdateOperatingStatus(operational bool) func(*badger.Txn) error {
	return update(makePrefix(codeOperatingStatus), operational)
}

func RetrieveOperatingStatus(operational *bool) func(*badger.Txn) error {
	return retrieve(makePrefix(codeOperatingStatus), operational)
}

// InsertContractOwner stores the account allowed to pause the contract. It is
// written once at bootstrap.
func InsertContractOwner(owner surety.Address) func(*badger.Txn) error {
	return insert(makePrefix(codeContractOwner), owner)
}

func RetrieveContractOwner(owner *surety.Address) func(*badger.Txn) error {
	return retrieve(makePrefix(codeContractOwner), owner)
}
