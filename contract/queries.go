package contract

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/contract/environment"
	"github.com/onflow/flight-surety/contract/insurance"
	"github.com/onflow/flight-surety/contract/status"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

// Reads below observe the latest committed state and have no side effects.
// They are served while the contract is not operational.

func (c *Coordinator) RegistrationFee() surety.Amount {
	return c.params.RegistrationFee
}

func (c *Coordinator) AirlineFundingAmount() surety.Amount {
	return c.params.AirlineFundingAmount
}

func (c *Coordinator) MinResponses() uint32 {
	return c.params.MinResponses
}

func (c *Coordinator) Parameters() environment.Parameters {
	return c.params
}

func (c *Coordinator) IsOperational() (bool, error) {
	var operational bool
	err := c.view(operation.RetrieveOperatingStatus(&operational))
	if err != nil {
		return false, fmt.Errorf("could not retrieve operating status: %w", err)
	}
	return operational, nil
}

func (c *Coordinator) Owner() (surety.Address, error) {
	var owner surety.Address
	err := c.view(operation.RetrieveContractOwner(&owner))
	if err != nil {
		return surety.EmptyAddress, fmt.Errorf("could not retrieve contract owner: %w", err)
	}
	return owner, nil
}

func (c *Coordinator) IsAirlineRegistered(address surety.Address) (bool, error) {
	var registered bool
	err := c.view(func(txn *badger.Txn) error {
		var err error
		registered, err = airlines.IsAirlineRegistered(txn, address)
		return err
	})
	return registered, err
}

func (c *Coordinator) IsAirlineFunded(address surety.Address) (bool, error) {
	var funded bool
	err := c.view(func(txn *badger.Txn) error {
		var err error
		funded, err = airlines.IsAirlineFunded(txn, address)
		return err
	})
	return funded, err
}

func (c *Coordinator) GetAirlineBalance(address surety.Address) (surety.Amount, error) {
	var balance surety.Amount
	err := c.view(func(txn *badger.Txn) error {
		var err error
		balance, err = airlines.GetAirlineBalance(txn, address)
		return err
	})
	return balance, err
}

func (c *Coordinator) GetAirline(address surety.Address) (*surety.Airline, error) {
	var airline *surety.Airline
	err := c.view(func(txn *badger.Txn) error {
		var err error
		airline, err = airlines.GetAirline(txn, address)
		return err
	})
	return airline, err
}

func (c *Coordinator) Airlines() ([]surety.Airline, error) {
	var list []surety.Airline
	err := c.view(func(txn *badger.Txn) error {
		var err error
		list, err = airlines.ListAirlines(txn)
		return err
	})
	return list, err
}

// GetBalance returns the withdrawable balance of a passenger.
func (c *Coordinator) GetBalance(account surety.Address) (surety.Amount, error) {
	var balance surety.Amount
	err := c.view(func(txn *badger.Txn) error {
		var err error
		balance, err = insurance.GetBalance(txn, account)
		return err
	})
	return balance, err
}

// AccountBalance returns the ledger balance of an account.
func (c *Coordinator) AccountBalance(account surety.Address) (surety.Amount, error) {
	var balance surety.Amount
	err := c.view(func(txn *badger.Txn) error {
		var err error
		balance, err = environment.NewAccounts(txn, nil).Balance(account)
		return err
	})
	return balance, err
}

func (c *Coordinator) GetInsurance(flightCode string, passenger surety.Address) (*surety.Policy, error) {
	var policy *surety.Policy
	err := c.view(func(txn *badger.Txn) error {
		var err error
		policy, err = insurance.GetInsurance(txn, flightCode, passenger)
		return err
	})
	return policy, err
}

// PoliciesByFlight returns every policy sold on the flight.
//
// Expected errors:
//   - FlightNotFound if no flight is registered under the code
func (c *Coordinator) PoliciesByFlight(flightCode string) ([]surety.Policy, error) {
	var policies []surety.Policy
	err := c.view(func(txn *badger.Txn) error {
		_, err := airlines.GetFlight(txn, flightCode)
		if err != nil {
			return err
		}
		policies, err = insurance.PoliciesByFlight(txn, flightCode)
		return err
	})
	return policies, err
}

func (c *Coordinator) GetFlightsCount() (uint64, error) {
	var count uint64
	err := c.view(func(txn *badger.Txn) error {
		var err error
		count, err = airlines.GetFlightsCount(txn)
		return err
	})
	return count, err
}

func (c *Coordinator) GetFlightByIndex(index uint64) (*surety.Flight, error) {
	var flight *surety.Flight
	err := c.view(func(txn *badger.Txn) error {
		var err error
		flight, err = airlines.GetFlightByIndex(txn, index)
		return err
	})
	return flight, err
}

func (c *Coordinator) Flights() ([]surety.Flight, error) {
	var flights []surety.Flight
	err := c.view(func(txn *badger.Txn) error {
		var err error
		flights, err = airlines.ListFlights(txn)
		return err
	})
	return flights, err
}

func (c *Coordinator) GetMyIndexes(caller surety.Address) (surety.OracleIndexes, error) {
	return c.oracles.GetMyIndexes(caller)
}

func (c *Coordinator) GetStatusRequest(key surety.RequestKey) (*surety.StatusRequest, error) {
	var request *surety.StatusRequest
	err := c.view(func(txn *badger.Txn) error {
		var err error
		request, err = status.GetStatusRequest(txn, key)
		return err
	})
	return request, err
}

func (c *Coordinator) StatusRequests() ([]surety.StatusRequest, error) {
	var requests []surety.StatusRequest
	err := c.view(func(txn *badger.Txn) error {
		var err error
		requests, err = status.ListStatusRequests(txn)
		return err
	})
	return requests, err
}

// FlightStatusRecord returns the latest consensus outcome for the flight.
func (c *Coordinator) FlightStatusRecord(airline surety.Address, flight string, timestamp int64) (*surety.FlightStatusRecord, error) {
	var record *surety.FlightStatusRecord
	err := c.view(func(txn *badger.Txn) error {
		var err error
		record, err = status.GetFlightStatusRecord(txn, airline, flight, timestamp)
		return err
	})
	return record, err
}

// Events returns the events with from <= height <= to.
func (c *Coordinator) Events(from uint64, to uint64) ([]surety.Event, error) {
	return c.events.ByHeightRange(from, to)
}

func (c *Coordinator) EventHead() (uint64, error) {
	return c.events.Head()
}
