package errors

import (
	"github.com/onflow/flight-surety/model/surety"
)

// NewUnauthorizedErrorf is returned when a capability gated operation is
// invoked by a caller lacking the capability, e.g. a non-funded airline
// registering another airline.
func NewUnauthorizedErrorf(caller surety.Address, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeUnauthorizedError,
		"caller %s is not authorized: "+msg,
		append([]interface{}{caller}, args...)...)
}

func IsUnauthorizedError(err error) bool {
	return HasErrorCode(err, ErrCodeUnauthorizedError)
}

// NewNotOperationalError is returned by every mutating operation while the
// contract is paused.
func NewNotOperationalError(operation string) CodedError {
	return NewCodedError(
		ErrCodeNotOperationalError,
		"contract is not operational, %s rejected",
		operation)
}

func IsNotOperationalError(err error) bool {
	return HasErrorCode(err, ErrCodeNotOperationalError)
}
