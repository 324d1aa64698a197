package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
)

func TestErrorHandling(t *testing.T) {
	require.False(t, IsCodedError(nil))

	t.Run("test coded error detection", func(t *testing.T) {
		e1 := NewDuplicateVoteError(surety.Uint64ToAddress(1), "airline 0000000000000002")
		e2 := fmt.Errorf("could not register airline: %w", e1)

		require.True(t, IsCodedError(e2))
		require.True(t, IsDuplicateVoteError(e2))
		require.False(t, IsUnauthorizedError(e2))

		code, ok := CodeOf(e2)
		require.True(t, ok)
		require.Equal(t, ErrCodeDuplicateVoteError, code)
		require.Equal(t, "DuplicateVote", code.Name())
	})

	t.Run("test wrapped code lookup", func(t *testing.T) {
		e1 := NewNothingToWithdrawError(surety.Uint64ToAddress(3))
		e2 := WrapCodedError(ErrCodeUnauthorizedError, e1, "withdraw of %s", "0000000000000003")
		e3 := fmt.Errorf("wrapped: %w", e2)

		require.True(t, IsUnauthorizedError(e3))
		require.True(t, IsNothingToWithdrawError(e3))

		code, ok := CodeOf(e3)
		require.True(t, ok)
		require.Equal(t, ErrCodeUnauthorizedError, code)
	})

	t.Run("uncoded error", func(t *testing.T) {
		e1 := fmt.Errorf("some storage failure")
		require.False(t, IsCodedError(e1))
		_, ok := CodeOf(e1)
		require.False(t, ok)
		require.Nil(t, Find(e1, ErrCodeNoSuchRequestError))
	})
}

func TestErrorCodeNames(t *testing.T) {
	for code, name := range codeNames {
		require.Equal(t, name, code.Name())
	}
	require.Equal(t, "unknown", ErrorCode(9999).Name())
}
