package admin

import (
	"errors"
	"fmt"
)

// ErrValidatorReqDataFormat is returned when an admin request is not in the expected format.
// For example, if the input is a JSON number, but the command expects a map, type conversion
// of the input will fail.
var ErrValidatorReqDataFormat = NewInvalidAdminReqFormatError("invalid request format")

// ErrUnknownCommand is returned when no handler is registered for the requested command.
var ErrUnknownCommand = errors.New("unknown command")

// InvalidAdminReqError indicates that an admin request has failed validation, and
// the request will not be processed. All Validator functions must return this error
// if the request is invalid.
type InvalidAdminReqError struct {
	Err error
}

func NewInvalidAdminReqErrorf(msg string, args ...any) InvalidAdminReqError {
	return InvalidAdminReqError{
		Err: fmt.Errorf(msg, args...),
	}
}

// NewInvalidAdminReqFormatError returns an InvalidAdminReqError indicating that
// the data of the request has the wrong shape.
func NewInvalidAdminReqFormatError(msg string, args ...any) InvalidAdminReqError {
	return NewInvalidAdminReqErrorf("invalid request format: "+msg, args...)
}

// NewInvalidAdminReqParameterError returns an InvalidAdminReqError indicating that
// a field of the request has an invalid value.
func NewInvalidAdminReqParameterError(field string, msg string, actualVal any) InvalidAdminReqError {
	return NewInvalidAdminReqErrorf("invalid value for '%s': %s. Got: %v", field, msg, actualVal)
}

func IsInvalidAdminParameterError(err error) bool {
	var target InvalidAdminReqError
	return errors.As(err, &target)
}

func (err InvalidAdminReqError) Error() string {
	return err.Err.Error()
}

func (err InvalidAdminReqError) Unwrap() error {
	return err.Err
}
