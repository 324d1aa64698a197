package errors

import "fmt"

type ErrorCode uint16

func (ec ErrorCode) String() string {
	return fmt.Sprintf("[Error Code: %d]", ec)
}

const (
	// authorization errors 1000 - 1049
	ErrCodeUnauthorizedError   ErrorCode = 1000
	ErrCodeNotOperationalError ErrorCode = 1001

	// value constraint errors 1050 - 1099
	ErrCodeInvalidAmountError              ErrorCode = 1050
	ErrCodeInsufficientFundsError          ErrorCode = 1051
	ErrCodeInsufficientFeeError            ErrorCode = 1052
	ErrCodeExceedsCapError                 ErrorCode = 1053
	ErrCodeInvalidStatusCodeError          ErrorCode = 1054
	ErrCodeInsufficientAccountBalanceError ErrorCode = 1055

	// idempotency errors 1100 - 1149
	ErrCodeDuplicateVoteError     ErrorCode = 1100
	ErrCodeDuplicatePolicyError   ErrorCode = 1101
	ErrCodeAlreadyFundedError     ErrorCode = 1102
	ErrCodeAlreadyClaimedError    ErrorCode = 1103
	ErrCodeAlreadyRegisteredError ErrorCode = 1104
	ErrCodeDuplicateFlightError   ErrorCode = 1105

	// precondition errors 1150 - 1199
	ErrCodeNotAnOracleError       ErrorCode = 1150
	ErrCodeIndexMismatchError     ErrorCode = 1151
	ErrCodeNoSuchRequestError     ErrorCode = 1152
	ErrCodeNotYetLateError        ErrorCode = 1153
	ErrCodePolicyNotFoundError    ErrorCode = 1154
	ErrCodeNothingToWithdrawError ErrorCode = 1155
	ErrCodeFlightNotFoundError    ErrorCode = 1156
	ErrCodeAirlineNotFoundError   ErrorCode = 1157
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnauthorizedError:               "Unauthorized",
	ErrCodeNotOperationalError:             "NotOperational",
	ErrCodeInvalidAmountError:              "InvalidAmount",
	ErrCodeInsufficientFundsError:          "InsufficientFunds",
	ErrCodeInsufficientFeeError:            "InsufficientFee",
	ErrCodeExceedsCapError:                 "ExceedsCap",
	ErrCodeInvalidStatusCodeError:          "InvalidStatusCode",
	ErrCodeInsufficientAccountBalanceError: "InsufficientAccountBalance",
	ErrCodeDuplicateVoteError:              "DuplicateVote",
	ErrCodeDuplicatePolicyError:            "DuplicatePolicy",
	ErrCodeAlreadyFundedError:              "AlreadyFunded",
	ErrCodeAlreadyClaimedError:             "AlreadyClaimed",
	ErrCodeAlreadyRegisteredError:          "AlreadyRegistered",
	ErrCodeDuplicateFlightError:            "DuplicateFlight",
	ErrCodeNotAnOracleError:                "NotAnOracle",
	ErrCodeIndexMismatchError:              "IndexMismatch",
	ErrCodeNoSuchRequestError:              "NoSuchRequest",
	ErrCodeNotYetLateError:                 "NotYetLate",
	ErrCodePolicyNotFoundError:             "PolicyNotFound",
	ErrCodeNothingToWithdrawError:          "NothingToWithdraw",
	ErrCodeFlightNotFoundError:             "FlightNotFound",
	ErrCodeAirlineNotFoundError:            "AirlineNotFound",
}

// Name returns the short name of the error code, used as metrics label.
func (ec ErrorCode) Name() string {
	name, ok := codeNames[ec]
	if !ok {
		return "unknown"
	}
	return name
}
