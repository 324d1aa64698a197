// Package status runs the oracle consensus on flight statuses. A request is
// opened for a flight, oracles holding the request index report a status, and
// the first status reported by enough distinct oracles becomes the outcome.
package status

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/oracles"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/module"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

type Engine struct {
	oracles *oracles.Registry
	metrics module.ContractMetrics
}

func NewEngine(oracles *oracles.Registry, metrics module.ContractMetrics) *Engine {
	return &Engine{
		oracles: oracles,
		metrics: metrics,
	}
}

// FetchFlightStatus opens a status request for the flight under a freshly
// derived index and announces it with an OracleRequest event. Asking again
// under an existing key leaves the request as it is and repeats the event.
func (e *Engine) FetchFlightStatus(env *environment.Environment, airline surety.Address, flight string, timestamp int64) (surety.RequestKey, error) {
	index, _, err := env.Random.NextIndex(env.Caller)
	if err != nil {
		return surety.RequestKey{}, fmt.Errorf("could not derive request index: %w", err)
	}

	key := surety.RequestKey{
		Index:     index,
		Airline:   airline,
		Flight:    flight,
		Timestamp: timestamp,
	}

	err = operation.InsertStatusRequest(&surety.StatusRequest{
		Key:       key,
		Requester: env.Caller,
	})(env.Tx.DBTxn)
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return surety.RequestKey{}, fmt.Errorf("could not open status request: %w", err)
	}

	err = env.Events.Emit(surety.EventOracleRequest, surety.OracleRequest{
		Index:     key.Index,
		Airline:   key.Airline,
		Flight:    key.Flight,
		Timestamp: key.Timestamp,
	})
	if err != nil {
		return surety.RequestKey{}, err
	}
	return key, nil
}

// SubmitOracleResponse records the vote of the calling oracle and resolves the
// request once a status reached the minimum number of responses.
//
// Expected errors, checked in this order:
//   - NotAnOracle if the caller is not a registered oracle
//   - IndexMismatch if index is not one of the caller's indexes
//   - NoSuchRequest if no request was opened under the key
//   - DuplicateVote if the caller already responded to the request
//   - InvalidStatusCode if status is not a defined status code
func (e *Engine) SubmitOracleResponse(
	env *environment.Environment,
	index uint8,
	airline surety.Address,
	flight string,
	timestamp int64,
	status surety.FlightStatus,
) error {
	txn := env.Tx.DBTxn

	oracle, err := e.oracles.Oracle(txn, env.Caller)
	if err != nil {
		return err
	}
	if !oracle.Indexes.Contains(index) {
		return suretyerrors.NewIndexMismatchError(env.Caller, index, oracle.Indexes)
	}

	key := surety.RequestKey{
		Index:     index,
		Airline:   airline,
		Flight:    flight,
		Timestamp: timestamp,
	}
	request, err := GetStatusRequest(txn, key)
	if err != nil {
		return err
	}
	if request.HasVoted(env.Caller) {
		return suretyerrors.NewDuplicateVoteError(env.Caller, fmt.Sprintf("status request %s", key.ID()))
	}
	if !status.Valid() {
		return suretyerrors.NewInvalidStatusCodeError(status)
	}

	count := request.Record(env.Caller, status)

	err = env.Events.Emit(surety.EventOracleReport, surety.OracleReport{
		Oracle:    env.Caller,
		Airline:   airline,
		Flight:    flight,
		Timestamp: timestamp,
		Status:    status,
	})
	if err != nil {
		return err
	}

	if !request.Resolved && count >= env.Params.MinResponses {
		err = e.resolve(env, request, status)
		if err != nil {
			return err
		}
	}

	err = operation.UpdateStatusRequest(request)(txn)
	if err != nil {
		return fmt.Errorf("could not update status request: %w", err)
	}
	return nil
}

// resolve fixes the outcome of the request. It runs at most once per request.
func (e *Engine) resolve(env *environment.Environment, request *surety.StatusRequest, status surety.FlightStatus) error {
	txn := env.Tx.DBTxn
	key := request.Key

	request.Resolved = true
	request.Status = status

	var flight surety.Flight
	err := operation.RetrieveFlight(key.Flight, &flight)(txn)
	switch {
	case err == nil:
		// another departure of the same flight code keeps its own status
		if flight.Airline == key.Airline && flight.Timestamp == key.Timestamp {
			flight.Status = status
			err = operation.UpdateFlight(&flight)(txn)
			if err != nil {
				return fmt.Errorf("could not update flight status: %w", err)
			}
		}
	case errors.Is(err, storage.ErrNotFound):
		// requests may name flights which were never registered
	default:
		return fmt.Errorf("could not retrieve flight %s: %w", key.Flight, err)
	}

	info := surety.FlightStatusInfo{
		Airline:   key.Airline,
		Flight:    key.Flight,
		Timestamp: key.Timestamp,
		Status:    status,
	}
	err = env.Events.Emit(surety.EventFlightStatusInfo, info)
	if err != nil {
		return err
	}
	err = env.Events.Emit(surety.EventFlightStatusProcessed, surety.FlightStatusProcessed(info))
	if err != nil {
		return err
	}

	events := env.Events.Events()
	err = operation.UpsertFlightStatusRecord(&surety.FlightStatusRecord{
		Airline:   key.Airline,
		Flight:    key.Flight,
		Timestamp: key.Timestamp,
		Status:    status,
		Index:     key.Index,
		Height:    events[len(events)-1].Height,
	})(txn)
	if err != nil {
		return fmt.Errorf("could not store flight status record: %w", err)
	}

	votes := len(request.Responses)
	env.Tx.OnSucceed(func() {
		e.metrics.StatusRequestResolved(votes)
	})
	return nil
}

// GetStatusRequest returns the request opened under key.
//
// Expected errors:
//   - NoSuchRequest if the key was never opened
func GetStatusRequest(txn *badger.Txn, key surety.RequestKey) (*surety.StatusRequest, error) {
	var request surety.StatusRequest
	err := operation.RetrieveStatusRequest(key, &request)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, suretyerrors.NewNoSuchRequestError(key)
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve status request: %w", err)
	}
	return &request, nil
}

func ListStatusRequests(txn *badger.Txn) ([]surety.StatusRequest, error) {
	var requests []surety.StatusRequest
	err := operation.LookupStatusRequests(&requests)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not list status requests: %w", err)
	}
	return requests, nil
}

// GetFlightStatusRecord returns the outcome of the latest resolved request on
// the flight, storage.ErrNotFound if none resolved.
func GetFlightStatusRecord(txn *badger.Txn, airline surety.Address, flight string, timestamp int64) (*surety.FlightStatusRecord, error) {
	var record surety.FlightStatusRecord
	err := operation.RetrieveFlightStatusRecord(airline, flight, timestamp, &record)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve flight status record: %w", err)
	}
	return &record, nil
}
