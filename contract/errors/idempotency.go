package errors

import (
	"github.com/onflow/flight-surety/model/surety"
)

// NewDuplicateVoteError is returned when a voter votes twice on the same
// admission or the same oracle request.
func NewDuplicateVoteError(voter surety.Address, subject string) CodedError {
	return NewCodedError(
		ErrCodeDuplicateVoteError,
		"%s already voted on %s",
		voter, subject)
}

func IsDuplicateVoteError(err error) bool {
	return HasErrorCode(err, ErrCodeDuplicateVoteError)
}

func NewDuplicatePolicyError(flightCode string, passenger surety.Address) CodedError {
	return NewCodedError(
		ErrCodeDuplicatePolicyError,
		"passenger %s already holds a policy for flight %s",
		passenger, flightCode)
}

func IsDuplicatePolicyError(err error) bool {
	return HasErrorCode(err, ErrCodeDuplicatePolicyError)
}

func NewAlreadyFundedError(airline surety.Address) CodedError {
	return NewCodedError(
		ErrCodeAlreadyFundedError,
		"airline %s is already funded",
		airline)
}

func IsAlreadyFundedError(err error) bool {
	return HasErrorCode(err, ErrCodeAlreadyFundedError)
}

func NewAlreadyClaimedError(flightCode string, passenger surety.Address) CodedError {
	return NewCodedError(
		ErrCodeAlreadyClaimedError,
		"policy of passenger %s for flight %s was already claimed",
		passenger, flightCode)
}

func IsAlreadyClaimedError(err error) bool {
	return HasErrorCode(err, ErrCodeAlreadyClaimedError)
}

// NewAlreadyRegisteredError is returned when registering an airline or an
// oracle a second time.
func NewAlreadyRegisteredError(kind string, address surety.Address) CodedError {
	return NewCodedError(
		ErrCodeAlreadyRegisteredError,
		"%s %s is already registered",
		kind, address)
}

func IsAlreadyRegisteredError(err error) bool {
	return HasErrorCode(err, ErrCodeAlreadyRegisteredError)
}

func NewDuplicateFlightError(code string) CodedError {
	return NewCodedError(
		ErrCodeDuplicateFlightError,
		"flight %s is already registered",
		code)
}

func IsDuplicateFlightError(err error) bool {
	return HasErrorCode(err, ErrCodeDuplicateFlightError)
}
