package genesis

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
	"github.com/onflow/flight-surety/storage/badger/transaction"
)

// ErrAlreadyBootstrapped is returned when the database already holds a
// contract state.
var ErrAlreadyBootstrapped = errors.New("contract state is already bootstrapped")

// Bootstrap writes the genesis state in a single transaction.
func Bootstrap(db *badger.DB, g *Genesis) error {
	err := g.Validate()
	if err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	bootstrapped, err := IsBootstrapped(db)
	if err != nil {
		return err
	}
	if bootstrapped {
		return ErrAlreadyBootstrapped
	}

	ops := transaction.NewDeferredDbOps().
		AddBadgerOp(wrap("operating status", operation.InsertOperatingStatus(true))).
		AddBadgerOp(wrap("owner", operation.InsertContractOwner(g.Owner))).
		AddBadgerOp(wrap("first airline", operation.InsertAirline(&surety.Airline{
			Address: g.FirstAirline.Address,
			Name:    g.FirstAirline.Name,
			State:   surety.AirlineRegistered,
		}))).
		AddBadgerOp(wrap("registered airline count", operation.InsertRegisteredAirlineCount(1))).
		AddBadgerOp(wrap("funded airline count", operation.InsertFundedAirlineCount(0))).
		AddBadgerOp(wrap("flight count", operation.InsertFlightCount(0)))

	for _, flight := range g.Flights {
		flight := flight
		ops.AddBadgerOp(func(txn *badger.Txn) error {
			_, err := airlines.AddFlight(txn, g.FirstAirline.Address, flight.Code, flight.Timestamp)
			if err != nil {
				return fmt.Errorf("could not add flight %s: %w", flight.Code, err)
			}
			return nil
		})
	}

	ops.AddBadgerOp(wrap("oracle nonce", operation.InsertOracleNonce(0))).
		AddBadgerOp(wrap("event head", operation.InsertEventHead(0))).
		AddBadgerOp(wrap("transaction count", operation.InsertTransactionCount(0)))

	for _, account := range g.Accounts {
		ops.AddBadgerOp(wrap(fmt.Sprintf("balance of %s", account.Address), operation.SetAccountBalance(account.Address, account.Balance)))
	}

	return transaction.Update(db, ops.Pending)
}

func wrap(what string, op func(*badger.Txn) error) func(*badger.Txn) error {
	return func(txn *badger.Txn) error {
		err := op(txn)
		if err != nil {
			return fmt.Errorf("could not insert %s: %w", what, err)
		}
		return nil
	}
}

// IsBootstrapped returns true once Bootstrap committed.
func IsBootstrapped(db *badger.DB) (bool, error) {
	var operational bool
	err := db.View(operation.RetrieveOperatingStatus(&operational))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not check bootstrap state: %w", err)
	}
	return true, nil
}
