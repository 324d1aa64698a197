package airlines

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

func IsAirlineRegistered(txn *badger.Txn, address surety.Address) (bool, error) {
	airline, err := lookupAirline(txn, address)
	if err != nil {
		return false, err
	}
	return airline != nil && airline.State.IsRegistered(), nil
}

func IsAirlineFunded(txn *badger.Txn, address surety.Address) (bool, error) {
	airline, err := lookupAirline(txn, address)
	if err != nil {
		return false, err
	}
	return airline != nil && airline.State == surety.AirlineFunded, nil
}

// GetAirlineBalance returns zero for unknown airlines.
func GetAirlineBalance(txn *badger.Txn, address surety.Address) (surety.Amount, error) {
	airline, err := lookupAirline(txn, address)
	if err != nil {
		return 0, err
	}
	if airline == nil {
		return 0, nil
	}
	return airline.Balance, nil
}

// GetAirline returns the full record.
//
// Expected errors:
//   - AirlineNotFound if the address never took part in admission
func GetAirline(txn *badger.Txn, address surety.Address) (*surety.Airline, error) {
	airline, err := lookupAirline(txn, address)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, suretyerrors.NewAirlineNotFoundError(address)
	}
	return airline, nil
}

// ListAirlines returns every airline known to the registry, ordered by address.
func ListAirlines(txn *badger.Txn) ([]surety.Airline, error) {
	var airlines []surety.Airline
	err := operation.LookupAirlines(&airlines)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not list airlines: %w", err)
	}
	return airlines, nil
}

// Counts returns the number of registered (including funded) and funded airlines.
func Counts(txn *badger.Txn) (registered uint32, funded uint32, err error) {
	err = operation.RetrieveRegisteredAirlineCount(&registered)(txn)
	if err != nil {
		return 0, 0, fmt.Errorf("could not retrieve registered airline count: %w", err)
	}
	err = operation.RetrieveFundedAirlineCount(&funded)(txn)
	if err != nil {
		return 0, 0, fmt.Errorf("could not retrieve funded airline count: %w", err)
	}
	return registered, funded, nil
}
