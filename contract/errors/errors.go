package errors

import (
	stdErrors "errors"
	"fmt"
)

// CodedError is a rejection of an operation caused by the caller: the
// operation had no effect and the contract remains serviceable. Any error
// without a code is a failure of the node itself.
type CodedError interface {
	Code() ErrorCode

	Unwrap() error
	error
}

type codedError struct {
	code ErrorCode
	err  error
}

var _ CodedError = codedError{}

func newError(code ErrorCode, rootCause error) codedError {
	return codedError{
		code: code,
		err:  rootCause,
	}
}

// WrapCodedError wraps err under the given code, prefixing the message.
func WrapCodedError(
	code ErrorCode,
	err error,
	prefixMsgFormat string,
	formatArguments ...interface{},
) codedError {
	if prefixMsgFormat != "" {
		msg := fmt.Sprintf(prefixMsgFormat, formatArguments...)
		err = fmt.Errorf("%s: %w", msg, err)
	}
	return newError(code, err)
}

// NewCodedError constructs a coded error with a formatted message.
func NewCodedError(
	code ErrorCode,
	format string,
	formatArguments ...interface{},
) codedError {
	return newError(code, fmt.Errorf(format, formatArguments...))
}

func (err codedError) Unwrap() error {
	return err.err
}

func (err codedError) Error() string {
	return fmt.Sprintf("%v %v", err.code, err.err)
}

func (err codedError) Code() ErrorCode {
	return err.code
}

// Find returns the first coded error in the chain of err with the given code,
// or nil.
func Find(originalErr error, code ErrorCode) CodedError {
	if originalErr == nil {
		return nil
	}

	var coded CodedError
	if !stdErrors.As(originalErr, &coded) {
		return nil
	}

	if coded.Code() == code {
		return coded
	}

	return Find(coded.Unwrap(), code)
}

// HasErrorCode returns true if the chain of err contains a coded error with
// the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	return Find(err, code) != nil
}

// IsCodedError returns true if err is a rejection rather than a failure.
func IsCodedError(err error) bool {
	var coded CodedError
	return stdErrors.As(err, &coded)
}

// CodeOf returns the outermost error code of err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var coded CodedError
	if !stdErrors.As(err, &coded) {
		return 0, false
	}
	return coded.Code(), true
}
