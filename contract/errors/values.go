package errors

import (
	"github.com/onflow/flight-surety/model/surety"
)

func NewInvalidAmountErrorf(amount surety.Amount, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidAmountError,
		"invalid amount (%s): "+msg,
		append([]interface{}{amount}, args...)...)
}

func IsInvalidAmountError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidAmountError)
}

// NewInsufficientFundsError is returned when an airline submits its funding
// before its balance covers the funding amount.
func NewInsufficientFundsError(airline surety.Address, balance surety.Amount, required surety.Amount) CodedError {
	return NewCodedError(
		ErrCodeInsufficientFundsError,
		"airline %s balance %s is below the required funding amount %s",
		airline, balance, required)
}

func IsInsufficientFundsError(err error) bool {
	return HasErrorCode(err, ErrCodeInsufficientFundsError)
}

func NewInsufficientFeeError(fee surety.Amount, required surety.Amount) CodedError {
	return NewCodedError(
		ErrCodeInsufficientFeeError,
		"fee %s is below the registration fee %s",
		fee, required)
}

func IsInsufficientFeeError(err error) bool {
	return HasErrorCode(err, ErrCodeInsufficientFeeError)
}

func NewExceedsCapError(amount surety.Amount, limit surety.Amount) CodedError {
	return NewCodedError(
		ErrCodeExceedsCapError,
		"amount %s exceeds the insurance cap %s",
		amount, limit)
}

func IsExceedsCapError(err error) bool {
	return HasErrorCode(err, ErrCodeExceedsCapError)
}

func NewInvalidStatusCodeError(status surety.FlightStatus) CodedError {
	return NewCodedError(
		ErrCodeInvalidStatusCodeError,
		"status code %d is not a known flight status",
		uint8(status))
}

func IsInvalidStatusCodeError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidStatusCodeError)
}

// NewInsufficientAccountBalanceError is returned by the ledger when a value
// transfer exceeds the balance of the paying account.
func NewInsufficientAccountBalanceError(account surety.Address, balance surety.Amount, amount surety.Amount) CodedError {
	return NewCodedError(
		ErrCodeInsufficientAccountBalanceError,
		"account %s balance %s cannot cover transfer of %s",
		account, balance, amount)
}

func IsInsufficientAccountBalanceError(err error) bool {
	return HasErrorCode(err, ErrCodeInsufficientAccountBalanceError)
}
