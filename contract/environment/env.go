package environment

import (
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

// Environment is everything a contract component sees while executing one
// transaction. All writes go through Tx and are discarded together if the
// transaction fails.
type Environment struct {
	Tx       *transaction.Tx
	TxID     surety.Identifier
	Caller   surety.Address
	Params   Parameters
	Events   *EventEmitter
	Accounts *Accounts
	Random   *IndexGenerator
}

// NewEnvironment assembles the environment of a transaction whose events
// follow the log head.
func NewEnvironment(
	tx *transaction.Tx,
	txID surety.Identifier,
	caller surety.Address,
	params Parameters,
	head uint64,
	entropy EntropySource,
	hook TransferHook,
) *Environment {
	return &Environment{
		Tx:       tx,
		TxID:     txID,
		Caller:   caller,
		Params:   params,
		Events:   NewEventEmitter(txID, caller, head),
		Accounts: NewAccounts(tx.DBTxn, hook),
		Random:   NewIndexGenerator(tx.DBTxn, entropy, params.IndexRange),
	}
}
