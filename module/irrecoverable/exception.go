package irrecoverable

import (
	"fmt"
)

// Exception represents an unexpected error. It wraps an error, which could be a sentinel error.
// IT does NOT IMPLEMENT an UNWRAP method, so the enclosed error's type cannot be accessed.
// Therefore, methods such as `errors.As` and `errors.Is` do not detect the Exception as any known sentinel error.
type Exception struct {
	err error
}

func (e Exception) Error() string {
	return e.err.Error()
}

// NewException wraps the input error as an exception, stripping any sentinel error information.
// This ensures that all upper levels in the stack do not infer that the error is one of the expected sentinel errors.
func NewException(err error) error {
	return Exception{
		err: err,
	}
}

// NewExceptionf is NewException with the ability to add formatting and context to the error text.
func NewExceptionf(msg string, args ...any) error {
	return NewException(fmt.Errorf(msg, args...))
}
