package storage

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

// Oracles stores registered oracles.
type Oracles interface {

	// Store inserts a new oracle as part of the transaction.
	// Expected errors during normal operations:
	//   - storage.ErrAlreadyExists if the oracle is already registered
	Store(oracle *surety.Oracle) func(*transaction.Tx) error

	// ByAddressTx reads an oracle inside a transaction.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the address never registered
	ByAddressTx(address surety.Address) func(*badger.Txn) (*surety.Oracle, error)

	// ByAddress reads an oracle from the latest committed state.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the address never registered
	ByAddress(address surety.Address) (*surety.Oracle, error)
}
