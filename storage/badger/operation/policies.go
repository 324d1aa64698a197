package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flight-surety/model/surety"
)

// InsertPolicy stores a new policy. A second policy for the same flight and
// passenger fails with storage.ErrAlreadyExists.
func InsertPolicy(policy *surety.Policy) func(*badger.Txn) error {
	return insert(makePrefix(codePolicy, policy.FlightCode, policy.Passenger), policy)
}

func UpdatePolicy(policy *surety.Policy) func(*badger.Txn) error {
	return update(makePrefix(codePolicy, policy.FlightCode, policy.Passenger), policy)
}

func RetrievePolicy(flightCode string, passenger surety.Address, policy *surety.Policy) func(*badger.Txn) error {
	return retrieve(makePrefix(codePolicy, flightCode, passenger), policy)
}

func LookupPoliciesByFlight(flightCode string, policies *[]surety.Policy) func(*badger.Txn) error {
	return traverse(makePrefix(codePolicy, flightCode), collect(policies))
}

// SetWithdrawable overwrites the withdrawable balance of a passenger.
func SetWithdrawable(account surety.Address, amount surety.Amount) func(*badger.Txn) error {
	return upsert(makePrefix(codeWithdrawable, account), amount)
}

// RetrieveWithdrawable returns storage.ErrNotFound if the account was never
// credited.
func RetrieveWithdrawable(account surety.Address, amount *surety.Amount) func(*badger.Txn) error {
	return retrieve(makePrefix(codeWithdrawable, account), amount)
}
