// Package airlines implements airline admission: direct registration of the
// first airlines, multi-party voting afterwards, and the funding that turns a
// registered airline into a participating one.
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

// Registry is the airline admission state machine. It keeps no state of its
// own; everything lives in the transaction of the environment.
type Registry struct{}

func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterAirline registers candidate directly while fewer than the direct
// registration limit of airlines are registered, and records a vote by the
// caller otherwise.
//
// Expected errors:
//   - Unauthorized if the caller is not a funded airline
//   - AlreadyRegistered if the candidate is registered already
//   - DuplicateVote if the caller already voted for the candidate
func (r *Registry) RegisterAirline(env *environment.Environment, name string, candidate surety.Address) error {
	txn := env.Tx.DBTxn

	caller, err := lookupAirline(txn, env.Caller)
	if err != nil {
		return err
	}
	if caller == nil || caller.State != surety.AirlineFunded {
		return suretyerrors.NewUnauthorizedErrorf(env.Caller, "only funded airlines can register airlines")
	}

	airline, err := lookupAirline(txn, candidate)
	if err != nil {
		return err
	}
	known := airline != nil
	if !known {
		airline = &surety.Airline{
			Address: candidate,
			Name:    name,
			State:   surety.AirlineUnregistered,
		}
	}
	if airline.State.IsRegistered() {
		return suretyerrors.NewAlreadyRegisteredError("airline", candidate)
	}
	if airline.Name == "" {
		airline.Name = name
	}

	var registered uint32
	err = operation.RetrieveRegisteredAirlineCount(&registered)(txn)
	if err != nil {
		return fmt.Errorf("could not retrieve registered airline count: %w", err)
	}

	if registered < env.Params.DirectRegistrationLimit {
		return r.admit(env, airline, known, registered)
	}

	err = operation.InsertAirlineVote(surety.AirlineVote{Candidate: candidate, Voter: env.Caller})(txn)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return suretyerrors.NewDuplicateVoteError(env.Caller, fmt.Sprintf("airline %s", candidate))
	}
	if err != nil {
		return fmt.Errorf("could not record vote: %w", err)
	}

	airline.Votes++
	airline.State = surety.AirlineVoted

	err = env.Events.Emit(surety.EventAirlineVoted, surety.AirlineVotedEvent{
		Candidate: candidate,
		Name:      airline.Name,
		VoteCount: airline.Votes,
	})
	if err != nil {
		return err
	}

	var funded uint32
	err = operation.RetrieveFundedAirlineCount(&funded)(txn)
	if err != nil {
		return fmt.Errorf("could not retrieve funded airline count: %w", err)
	}

	if airline.Votes >= env.Params.RequiredVotes(funded) {
		return r.admit(env, airline, known, registered)
	}

	return storeAirline(txn, airline, known)
}

// admit moves the candidate to Registered.
func (r *Registry) admit(env *environment.Environment, airline *surety.Airline, known bool, registered uint32) error {
	airline.State = surety.AirlineRegistered

	err := storeAirline(env.Tx.DBTxn, airline, known)
	if err != nil {
		return err
	}

	err = operation.UpdateRegisteredAirlineCount(registered + 1)(env.Tx.DBTxn)
	if err != nil {
		return fmt.Errorf("could not update registered airline count: %w", err)
	}

	return env.Events.Emit(surety.EventAirlineRegistered, surety.AirlineRegisteredEvent{
		Airline: airline.Address,
		Name:    airline.Name,
	})
}

// Fund credits amount to the balance of the calling airline. The value itself
// has been moved into the contract account before.
//
// Expected errors:
//   - InvalidAmount if amount is zero
//   - Unauthorized if the caller is not a registered airline
func (r *Registry) Fund(env *environment.Environment, amount surety.Amount) error {
	if amount == 0 {
		return suretyerrors.NewInvalidAmountErrorf(amount, "funding must be positive")
	}

	txn := env.Tx.DBTxn
	airline, err := lookupAirline(txn, env.Caller)
	if err != nil {
		return err
	}
	if airline == nil || !airline.State.IsRegistered() {
		return suretyerrors.NewUnauthorizedErrorf(env.Caller, "only registered airlines can fund")
	}

	airline.Balance, err = airline.Balance.Add(amount)
	if err != nil {
		return suretyerrors.NewInvalidAmountErrorf(amount, "balance overflow")
	}

	err = operation.UpdateAirline(airline)(txn)
	if err != nil {
		return fmt.Errorf("could not update airline: %w", err)
	}

	return env.Events.Emit(surety.EventAirlineFunded, surety.AirlineFundedEvent{
		Airline: airline.Address,
		Amount:  amount,
		Balance: airline.Balance,
	})
}

// SubmitAirlineFunding pays the funding threshold out of the airline balance
// and marks the airline as funded.
//
// Expected errors:
//   - Unauthorized if the caller is not a registered airline
//   - AlreadyFunded if the caller is funded already
//   - InsufficientFunds if the balance is below the funding amount
func (r *Registry) SubmitAirlineFunding(env *environment.Environment) error {
	txn := env.Tx.DBTxn

	airline, err := lookupAirline(txn, env.Caller)
	if err != nil {
		return err
	}
	if airline == nil || !airline.State.IsRegistered() {
		return suretyerrors.NewUnauthorizedErrorf(env.Caller, "only registered airlines can submit funding")
	}
	if airline.State == surety.AirlineFunded {
		return suretyerrors.NewAlreadyFundedError(airline.Address)
	}

	required := env.Params.AirlineFundingAmount
	if airline.Balance < required {
		return suretyerrors.NewInsufficientFundsError(airline.Address, airline.Balance, required)
	}

	airline.Balance -= required
	airline.State = surety.AirlineFunded

	err = operation.UpdateAirline(airline)(txn)
	if err != nil {
		return fmt.Errorf("could not update airline: %w", err)
	}

	var funded uint32
	err = operation.RetrieveFundedAirlineCount(&funded)(txn)
	if err != nil {
		return fmt.Errorf("could not retrieve funded airline count: %w", err)
	}
	err = operation.UpdateFundedAirlineCount(funded + 1)(txn)
	if err != nil {
		return fmt.Errorf("could not update funded airline count: %w", err)
	}

	return env.Events.Emit(surety.EventAirlinePaid, surety.AirlinePaid{
		Airline: airline.Address,
		Amount:  required,
	})
}

// lookupAirline returns nil without error for addresses the registry never saw.
func lookupAirline(txn *badger.Txn, address surety.Address) (*surety.Airline, error) {
	var airline surety.Airline
	err := operation.RetrieveAirline(address, &airline)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve airline %s: %w", address, err)
	}
	return &airline, nil
}

func storeAirline(txn *badger.Txn, airline *surety.Airline, known bool) error {
	var err error
	if known {
		err = operation.UpdateAirline(airline)(txn)
	} else {
		err = operation.InsertAirline(airline)(txn)
	}
	if err != nil {
		return fmt.Errorf("could not store airline %s: %w", airline.Address, err)
	}
	return nil
}
