// Package insurance implements the escrow ledger: passengers buy policies on
// registered flights, claim the payout once the airline caused a delay, and
// withdraw credited payouts.
package insurance

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/contract/airlines"
	"github.com/onflow/flight-surety/contract/environment"
	suretyerrors "github.com/onflow/flight-surety/contract/errors"
	"github.com/onflow/flight-surety/model/surety"
	"github.com/onflow/flight-surety/storage"
	"github.com/onflow/flight-surety/storage/badger/operation"
)

type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

// PurchaseInsurance stores a policy of the caller on the flight. The premium
// has been moved into the contract account before.
//
// Expected errors:
//   - InvalidAmount if amount is zero
//   - ExceedsCap if amount is above the insurance cap
//   - FlightNotFound if the flight is not registered
//   - DuplicatePolicy if the caller already insured the flight
func (l *Ledger) PurchaseInsurance(env *environment.Environment, flightCode string, amount surety.Amount) (*surety.Policy, error) {
	if amount == 0 {
		return nil, suretyerrors.NewInvalidAmountErrorf(amount, "premium must be positive")
	}
	if amount > env.Params.InsuranceCap {
		return nil, suretyerrors.NewExceedsCapError(amount, env.Params.InsuranceCap)
	}

	txn := env.Tx.DBTxn
	_, err := airlines.GetFlight(txn, flightCode)
	if err != nil {
		return nil, err
	}

	payout, err := env.Params.Payout(amount)
	if err != nil {
		return nil, fmt.Errorf("could not compute payout: %w", err)
	}

	policy := &surety.Policy{
		FlightCode: flightCode,
		Passenger:  env.Caller,
		Amount:     amount,
		Payout:     payout,
		State:      surety.PolicyActive,
	}
	err = operation.InsertPolicy(policy)(txn)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, suretyerrors.NewDuplicatePolicyError(flightCode, env.Caller)
	}
	if err != nil {
		return nil, fmt.Errorf("could not insert policy: %w", err)
	}

	err = env.Events.Emit(surety.EventInsurancePurchased, surety.InsurancePurchased{
		Passenger:      policy.Passenger,
		FlightCode:     policy.FlightCode,
		Amount:         policy.Amount,
		InsuranceValue: policy.Payout,
	})
	if err != nil {
		return nil, err
	}
	return policy, nil
}

// ClaimInsurance credits the payout of the caller's policy to the caller's
// withdrawable balance.
//
// Expected errors:
//   - PolicyNotFound if the caller holds no policy on the flight
//   - NotYetLate unless the flight resolved to LateAirline
//   - AlreadyClaimed if the policy paid out before
func (l *Ledger) ClaimInsurance(env *environment.Environment, flightCode string) (surety.Amount, error) {
	txn := env.Tx.DBTxn

	policy, err := GetInsurance(txn, flightCode, env.Caller)
	if err != nil {
		return 0, err
	}

	flight, err := airlines.GetFlight(txn, flightCode)
	if err != nil {
		return 0, err
	}
	if flight.Status != surety.StatusLateAirline {
		return 0, suretyerrors.NewNotYetLateError(flightCode, flight.Status)
	}
	if policy.State == surety.PolicyClaimed {
		return 0, suretyerrors.NewAlreadyClaimedError(flightCode, env.Caller)
	}

	balance, err := GetBalance(txn, env.Caller)
	if err != nil {
		return 0, err
	}
	balance, err = balance.Add(policy.Payout)
	if err != nil {
		return 0, fmt.Errorf("could not credit payout: %w", err)
	}
	err = operation.SetWithdrawable(env.Caller, balance)(txn)
	if err != nil {
		return 0, fmt.Errorf("could not update withdrawable balance: %w", err)
	}

	policy.State = surety.PolicyClaimed
	err = operation.UpdatePolicy(policy)(txn)
	if err != nil {
		return 0, fmt.Errorf("could not update policy: %w", err)
	}

	err = env.Events.Emit(surety.EventInsuranceClaimed, surety.InsuranceClaimed{
		Passenger:  env.Caller,
		FlightCode: flightCode,
		Payout:     policy.Payout,
	})
	if err != nil {
		return 0, err
	}
	return policy.Payout, nil
}

// WithdrawBalance pays the withdrawable balance of the caller out of the
// contract account. The balance is cleared before the transfer runs, so any
// withdrawal triggered by the transfer itself finds nothing.
//
// Expected errors:
//   - NothingToWithdraw if the balance is zero
//   - InsufficientAccountBalance if the contract account cannot cover it
func (l *Ledger) WithdrawBalance(env *environment.Environment) (surety.Amount, error) {
	txn := env.Tx.DBTxn

	amount, err := GetBalance(txn, env.Caller)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, suretyerrors.NewNothingToWithdrawError(env.Caller)
	}

	err = operation.SetWithdrawable(env.Caller, 0)(txn)
	if err != nil {
		return 0, fmt.Errorf("could not clear withdrawable balance: %w", err)
	}

	err = env.Accounts.Transfer(surety.ContractAddress, env.Caller, amount)
	if err != nil {
		return 0, err
	}

	err = env.Events.Emit(surety.EventBalanceWithdrawn, surety.BalanceWithdrawn{
		Account: env.Caller,
		Amount:  amount,
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// GetBalance returns the withdrawable balance of the account.
func GetBalance(txn *badger.Txn, account surety.Address) (surety.Amount, error) {
	var amount surety.Amount
	err := operation.RetrieveWithdrawable(account, &amount)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not retrieve withdrawable balance of %s: %w", account, err)
	}
	return amount, nil
}

// GetInsurance returns the policy of passenger on the flight.
//
// Expected errors:
//   - PolicyNotFound if there is none
func GetInsurance(txn *badger.Txn, flightCode string, passenger surety.Address) (*surety.Policy, error) {
	var policy surety.Policy
	err := operation.RetrievePolicy(flightCode, passenger, &policy)(txn)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, suretyerrors.NewPolicyNotFoundError(flightCode, passenger)
	}
	if err != nil {
		return nil, fmt.Errorf("could not retrieve policy: %w", err)
	}
	return &policy, nil
}

// PoliciesByFlight returns every policy sold on the flight.
func PoliciesByFlight(txn *badger.Txn, flightCode string) ([]surety.Policy, error) {
	var policies []surety.Policy
	err := operation.LookupPoliciesByFlight(flightCode, &policies)(txn)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve policies of %s: %w", flightCode, err)
	}
	return policies, nil
}
