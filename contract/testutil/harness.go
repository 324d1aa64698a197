// Package testutil runs contract components against a bootstrapped database
// without going through the coordinator.
package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module/metrics"
	"github.com/onflow/flight-surety/storage"
	storagebadger "github.com/onflow/flight-surety/storage/badger"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/storage/badger/transaction"
	"github.com/onflow/flight-surety/utils/unittest"
)

type Harness struct {
	DB      *badger.DB
	Genesis *genesis.Genesis
	Params  environment.Parameters
	Entropy environment.EntropySource
	// Hook, if set, runs after every ledger transfer.
	Hook environment.TransferHook

	Events *storagebadger.EventLog
}

// NewHarness bootstraps db with a genesis holding a random owner and first
// airline and no flights.
func NewHarness(t testing.TB, db *badger.DB) *Harness {
	g := &genesis.Genesis{
		Owner: unittest.AddressFixture(),
		FirstAirline: genesis.Airline{
			Address: unittest.AddressFixture(),
			Name:    "First Air",
		},
	}
	require.NoError(t, genesis.Bootstrap(db, g))

	return &Harness{
		DB:      db,
		Genesis: g,
		Params:  environment.DefaultParameters(),
		Entropy: environment.LedgerEntropy{},
		Events:  storagebadger.NewEventLog(metrics.NewNoopCollector(), db),
	}
}

// Execute runs f as one transaction of caller and returns the events it
// emitted. If f fails nothing is written.
func (h *Harness) Execute(caller surety.Address, f func(env *environment.Environment) error) ([]surety.Event, error) {
	txID := unittest.IdentifierFixture()

	var events []surety.Event
	err := transaction.Update(h.DB, func(tx *transaction.Tx) error {
		var head uint64
		err := operation.RetrieveEventHead(&head)(tx.DBTxn)
		if err != nil {
			return fmt.Errorf("could not retrieve event head: %w", err)
		}

		env := environment.NewEnvironment(tx, txID, caller, h.Params, head, h.Entropy, h.Hook)
		err = f(env)
		if err != nil {
			return err
		}

		events = env.Events.Events()
		err = h.Events.Append(events)(tx)
		if err != nil {
			return err
		}
		return operation.SetLastTransactionID(txID)(tx.DBTxn)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// View runs a read-only function against the latest committed state.
func (h *Harness) View(t testing.TB, f func(txn *badger.Txn)) {
	err := h.DB.View(func(txn *badger.Txn) error {
		f(txn)
		return nil
	})
	require.NoError(t, err)
}

// Credit adds amount to the ledger account.
func (h *Harness) Credit(t testing.TB, account surety.Address, amount surety.Amount) {
	Credit(t, h.DB, account, amount)
}

// Credit adds amount to a ledger account of db.
func Credit(t testing.TB, db *badger.DB, account surety.Address, amount surety.Amount) {
	err := db.Update(func(txn *badger.Txn) error {
		var balance surety.Amount
		err := operation.RetrieveAccountBalance(account, &balance)(txn)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return operation.SetAccountBalance(account, balance+amount)(txn)
	})
	require.NoError(t, err)
}

// OracleNonce returns the nonce the next index derivation will use.
func OracleNonce(db *badger.DB) (uint64, error) {
	var nonce uint64
	err := db.View(operation.RetrieveOracleNonce(&nonce))
	return nonce, err
}

// AccountBalance returns the ledger balance of the account.
func (h *Harness) AccountBalance(t testing.TB, account surety.Address) surety.Amount {
	var balance surety.Amount
	h.View(t, func(txn *badger.Txn) {
		b, err := environment.NewAccounts(txn, nil).Balance(account)
		require.NoError(t, err)
		balance = b
	})
	return balance
}

// SeedAirline writes an airline in the given state and keeps the airline
// counters consistent. The first airline of the genesis may be promoted this
// way too.
func (h *Harness) SeedAirline(t testing.TB, address surety.Address, state surety.AirlineState) {
	err := h.DB.Update(func(txn *badger.Txn) error {
		var airline surety.Airline
		err := operation.RetrieveAirline(address, &airline)(txn)
		known := err == nil
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		var registered, funded uint32
		if err := operation.RetrieveRegisteredAirlineCount(&registered)(txn); err != nil {
			return err
		}
		if err := operation.RetrieveFundedAirlineCount(&funded)(txn); err != nil {
			return err
		}
		if airline.State.IsRegistered() {
			registered--
		}
		if airline.State == surety.AirlineFunded {
			funded--
		}
		if state.IsRegistered() {
			registered++
		}
		if state == surety.AirlineFunded {
			funded++
		}

		airline.Address = address
		airline.State = state
		if airline.Name == "" {
			airline.Name = fmt.Sprintf("Airline %s", address)
		}
		if known {
			err = operation.UpdateAirline(&airline)(txn)
		} else {
			err = operation.InsertAirline(&airline)(txn)
		}
		if err != nil {
			return err
		}
		if err := operation.UpdateRegisteredAirlineCount(registered)(txn); err != nil {
			return err
		}
		return operation.UpdateFundedAirlineCount(funded)(txn)
	})
	require.NoError(t, err)
}

// FundedAirlines seeds n funded airlines, the first airline of the genesis
// included.
func (h *Harness) FundedAirlines(t testing.TB, n int) []surety.Address {
	if n == 0 {
		return nil
	}
	addresses := append([]surety.Address{h.Genesis.FirstAirline.Address}, unittest.AddressListFixture(n-1)...)
	for _, address := range addresses {
		h.SeedAirline(t, address, surety.AirlineFunded)
	}
	return addresses
}
