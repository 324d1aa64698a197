package airlines

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

// RegisterFlight lists a flight of the calling airline. Flight codes are unique
// across all airlines.
//
// Expected errors:
//   - Unauthorized if the caller is not a funded airline
//   - DuplicateFlight if the code is taken
func (r *Registry) RegisterFlight(env *environment.Environment, code string, timestamp int64) (*surety.Flight, error) {
	funded, err := IsAirlineFunded(env.Tx.DBTxn, env.Caller)
	if err != nil {
		return nil, err
	}
	if !funded {
		return nil, suretyerrors.NewUnauthorizedErrorf(env.Caller, "only funded airlines can register flights")
	}

	flight, err := AddFlight(env.Tx.DBTxn, env.Caller, code, timestamp)
	if err != nil {
		return nil, err
	}

	err = env.Events.Emit(surety.EventFlightRegistered, surety.FlightRegistered{
		Airline:   flight.Airline,
		Code:      flight.Code,
		Timestamp: flight.Timestamp,
		Index:     flight.Index,
	})
	if err != nil {
		return nil, err
	}
	return flight, nil
}

// AddFlight appends a flight to the flight list without authorization checks.
//
// Expected errors:
//   - DuplicateFlight if the code is taken
func AddFlight(txn *badger.Txn, airline surety.Address, code string, timestamp int64) (*surety.Flight, error) {
	if code == "" {
		return nil, fmt.Errorf("flight code must not be empty")
	}

	var count uint64
	err := operation.RetrieveFlightCount(&count)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve flight count: %w", err)
	}

	flight := &surety.Flight{
		Airline:   airline,
		Code:      code,
		Timestamp: timestamp,
		Status:    surety.StatusUnknown,
		Index:     count,
	}

	err = operation.InsertFlight(flight)(txn)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, suretyerrors.NewDuplicateFlightError(code)
	}
	if err != nil {
		return nil, fmt.Errorf("could not insert flight %s: %w", code, err)
	}

	err = operation.IndexFlight(count, code)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not index flight %s: %w", code, err)
	}
	err = operation.UpdateFlightCount(count + 1)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not update flight count: %w", err)
	}
	return flight, nil
}

func GetFlightsCount(txn *badger.Txn) (uint64, error) {
	var count uint64
	err := operation.RetrieveFlightCount(&count)(txn)
	if err != nil {
		return 0, fmt.Errorf("could not retrieve flight count: %w", err)
	}
	return count, nil
}

// GetFlightByIndex returns the flight registered at position index.
//
// Expected errors:
//   - FlightNotFound if index is out of range
func GetFlightByIndex(txn *badger.Txn, index uint64) (*surety.Flight, error) {
	var code string
	err := operation.LookupFlightCode(index, &code)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, suretyerrors.NewFlightNotFoundError(fmt.Sprintf("#%d", index))
	}
	if err != nil {
		return nil, fmt.Errorf("could not look up flight %d: %w", index, err)
	}
	return GetFlight(txn, code)
}

// GetFlight returns the flight with the given code.
//
// Expected errors:
//   - FlightNotFound if no such flight was registered
func GetFlight(txn *badger.Txn, code string) (*surety.Flight, error) {
	var flight surety.Flight
	err := operation.RetrieveFlight(code, &flight)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, suretyerrors.NewFlightNotFoundError(code)
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve flight %s: %w", code, err)
	}
	return &flight, nil
}

func ListFlights(txn *badger.Txn) ([]surety.Flight, error) {
	var flights []surety.Flight
	err := operation.LookupFlights(&flights)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not list flights: %w", err)
	}
	return flights, nil
}
