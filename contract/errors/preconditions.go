package errors

import (
	"github.com/onflow/flight-surety/model/surety"
)

// NewNotAnOracleError is returned when the caller never registered as oracle.
func NewNotAnOracleError(caller surety.Address) CodedError {
	return NewCodedError(
		ErrCodeNotAnOracleError,
		"%s is not a registered oracle",
		caller)
}

func IsNotAnOracleError(err error) bool {
	return HasErrorCode(err, ErrCodeNotAnOracleError)
}

func NewIndexMismatchError(caller surety.Address, index uint8, indexes surety.OracleIndexes) CodedError {
	return NewCodedError(
		ErrCodeIndexMismatchError,
		"index %d does not match the indexes %v of oracle %s",
		index, indexes, caller)
}

func IsIndexMismatchError(err error) bool {
	return HasErrorCode(err, ErrCodeIndexMismatchError)
}

func NewNoSuchRequestError(key surety.RequestKey) CodedError {
	return NewCodedError(
		ErrCodeNoSuchRequestError,
		"no status request for flight %s of %s at %d with index %d",
		key.Flight, key.Airline, key.Timestamp, key.Index)
}

func IsNoSuchRequestError(err error) bool {
	return HasErrorCode(err, ErrCodeNoSuchRequestError)
}

func NewNotYetLateError(flightCode string, status surety.FlightStatus) CodedError {
	return NewCodedError(
		ErrCodeNotYetLateError,
		"flight %s has status %s, payouts require %s",
		flightCode, status, surety.StatusLateAirline)
}

func IsNotYetLateError(err error) bool {
	return HasErrorCode(err, ErrCodeNotYetLateError)
}

func NewPolicyNotFoundError(flightCode string, passenger surety.Address) CodedError {
	return NewCodedError(
		ErrCodePolicyNotFoundError,
		"passenger %s holds no policy for flight %s",
		passenger, flightCode)
}

func IsPolicyNotFoundError(err error) bool {
	return HasErrorCode(err, ErrCodePolicyNotFoundError)
}

func NewNothingToWithdrawError(caller surety.Address) CodedError {
	return NewCodedError(
		ErrCodeNothingToWithdrawError,
		"%s has no withdrawable balance",
		caller)
}

func IsNothingToWithdrawError(err error) bool {
	return HasErrorCode(err, ErrCodeNothingToWithdrawError)
}

func NewFlightNotFoundError(code string) CodedError {
	return NewCodedError(
		ErrCodeFlightNotFoundError,
		"flight %s not found",
		code)
}

func IsFlightNotFoundError(err error) bool {
	return HasErrorCode(err, ErrCodeFlightNotFoundError)
}

func NewAirlineNotFoundError(address surety.Address) CodedError {
	return NewCodedError(
		ErrCodeAirlineNotFoundError,
		"airline %s not found",
		address)
}

func IsAirlineNotFoundError(err error) bool {
	return HasErrorCode(err, ErrCodeAirlineNotFoundError)
}
