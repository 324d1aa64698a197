package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

// SetAccountBalance overwrites the ledger balance of an account.
func SetAccountBalance(account surety.Address, balance surety.Amount) func(*badger.Txn) error {
	return upsert(makePrefix(codeAccountBalance, account), balance)
}

// RetrieveAccountBalance returns storage.ErrNotFound for accounts which never
// held value.
func RetrieveAccountBalance(account surety.Address, balance *surety.Amount) func(*badger.Txn) error {
	return retrieve(makePrefix(codeAccountBalance, account), balance)
}
