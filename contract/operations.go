package contract

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/contract/genesis"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

// Operation names, used as metric labels and in logs.
const (
	OpRegisterAirline      = "register_airline"
	OpFund                 = "fund"
	OpSubmitAirlineFunding = "submit_airline_funding"
	OpRegisterFlight       = "register_flight"
	OpPurchaseInsurance    = "purchase_insurance"
	OpClaimInsurance       = "claim_insurance"
	OpWithdrawBalance      = "withdraw_balance"
	OpFetchFlightStatus    = "fetch_flight_status"
	OpRegisterOracle       = "register_oracle"
	OpSubmitOracleResponse = "submit_oracle_response"
	OpSetOperatingStatus   = "set_operating_status"
)

// Bootstrap writes the genesis state into an empty database.
func Bootstrap(db *badger.DB, g *genesis.Genesis) error {
	return genesis.Bootstrap(db, g)
}

func (c *Coordinator) RegisterAirline(ctx context.Context, caller surety.Address, name string, candidate surety.Address) (*Result, error) {
	return c.execute(ctx, OpRegisterAirline, caller, 0, func(env *environment.Environment) error {
		return c.airlineRegistry.RegisterAirline(env, name, candidate)
	})
}

// Fund moves amount from the caller's account into the contract and credits
// it to the caller's airline balance.
func (c *Coordinator) Fund(ctx context.Context, caller surety.Address, amount surety.Amount) (*Result, error) {
	return c.execute(ctx, OpFund, caller, amount, func(env *environment.Environment) error {
		return c.airlineRegistry.Fund(env, amount)
	})
}

func (c *Coordinator) SubmitAirlineFunding(ctx context.Context, caller surety.Address) (*Result, error) {
	return c.execute(ctx, OpSubmitAirlineFunding, caller, 0, func(env *environment.Environment) error {
		return c.airlineRegistry.SubmitAirlineFunding(env)
	})
}

func (c *Coordinator) RegisterFlight(ctx context.Context, caller surety.Address, code string, timestamp int64) (*surety.Flight, *Result, error) {
	var flight *surety.Flight
	result, err := c.execute(ctx, OpRegisterFlight, caller, 0, func(env *environment.Environment) error {
		var err error
		flight, err = c.airlineRegistry.RegisterFlight(env, code, timestamp)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return flight, result, nil
}

// PurchaseInsurance moves amount from the passenger's account into the
// contract and opens a policy on the flight.
func (c *Coordinator) PurchaseInsurance(ctx context.Context, passenger surety.Address, flightCode string, amount surety.Amount) (*surety.Policy, *Result, error) {
	var policy *surety.Policy
	result, err := c.execute(ctx, OpPurchaseInsurance, passenger, amount, func(env *environment.Environment) error {
		var err error
		policy, err = c.ledger.PurchaseInsurance(env, flightCode, amount)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return policy, result, nil
}

// ClaimInsurance credits the payout of the passenger's policy to the
// passenger's withdrawable balance.
func (c *Coordinator) ClaimInsurance(ctx context.Context, passenger surety.Address, flightCode string) (surety.Amount, *Result, error) {
	var payout surety.Amount
	result, err := c.execute(ctx, OpClaimInsurance, passenger, 0, func(env *environment.Environment) error {
		var err error
		payout, err = c.ledger.ClaimInsurance(env, flightCode)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return payout, result, nil
}

// WithdrawBalance transfers the caller's whole withdrawable balance from the
// contract to the caller's account.
func (c *Coordinator) WithdrawBalance(ctx context.Context, caller surety.Address) (surety.Amount, *Result, error) {
	var amount surety.Amount
	result, err := c.execute(ctx, OpWithdrawBalance, caller, 0, func(env *environment.Environment) error {
		var err error
		amount, err = c.ledger.WithdrawBalance(env)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return amount, result, nil
}

// FetchFlightStatus asks the oracles for the status of a flight.
func (c *Coordinator) FetchFlightStatus(ctx context.Context, caller surety.Address, airline surety.Address, flight string, timestamp int64) (surety.RequestKey, *Result, error) {
	var key surety.RequestKey
	result, err := c.execute(ctx, OpFetchFlightStatus, caller, 0, func(env *environment.Environment) error {
		var err error
		key, err = c.consensus.FetchFlightStatus(env, airline, flight, timestamp)
		return err
	})
	if err != nil {
		return surety.RequestKey{}, nil, err
	}
	return key, result, nil
}

// RegisterOracle moves the fee from the caller's account into the contract and
// registers the caller as an oracle.
func (c *Coordinator) RegisterOracle(ctx context.Context, caller surety.Address, fee surety.Amount) (*surety.Oracle, *Result, error) {
	var oracle *surety.Oracle
	result, err := c.execute(ctx, OpRegisterOracle, caller, fee, func(env *environment.Environment) error {
		var err error
		oracle, err = c.oracles.RegisterOracle(env, fee)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return oracle, result, nil
}

func (c *Coordinator) SubmitOracleResponse(
	ctx context.Context,
	caller surety.Address,
	index uint8,
	airline surety.Address,
	flight string,
	timestamp int64,
	status surety.FlightStatus,
) (*Result, error) {
	return c.execute(ctx, OpSubmitOracleResponse, caller, 0, func(env *environment.Environment) error {
		return c.consensus.SubmitOracleResponse(env, index, airline, flight, timestamp, status)
	})
}

// SetOperatingStatus switches mutating operations on or off. Only the contract
// owner may call it, and it is served while the contract is not operational.
func (c *Coordinator) SetOperatingStatus(ctx context.Context, caller surety.Address, operational bool) (*Result, error) {
	return c.run(ctx, OpSetOperatingStatus, caller, 0, false, func(env *environment.Environment) error {
		txn := env.Tx.DBTxn

		var owner surety.Address
		err := operation.RetrieveContractOwner(&owner)(txn)
		if err != nil {
			return fmt.Errorf("could not retrieve contract owner: %w", err)
		}
		if caller != owner {
			return suretyerrors.NewUnauthorizedErrorf(caller, "only the contract owner may change the operating status")
		}

		err = operation.UpdateOperatingStatus(operational)(txn)
		if err != nil {
			return fmt.Errorf("could not update operating status: %w", err)
		}
		return env.Events.Emit(surety.EventOperatingStatusChanged, surety.OperatingStatusChanged{
			Operational: operational,
		})
	})
}
