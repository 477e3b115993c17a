package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NotFound("user not found")
		assert.Equal(t, "user not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, ErrCodeUnavailable, "store lookup failed")
		assert.Equal(t, "store lookup failed: connection refused", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "wrapped")
	require.ErrorIs(t, err, cause)
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "nothing %d", 1))
}

func TestReasonCode(t *testing.T) {
	t.Run("defaults to code", func(t *testing.T) {
		err := Forbidden("nope")
		assert.Equal(t, "forbidden", err.ReasonCode())
	})

	t.Run("explicit reason wins", func(t *testing.T) {
		err := Unauthorized("no header").WithReason("missing_credential")
		assert.Equal(t, "missing_credential", err.ReasonCode())
	})
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", NotFound("x"), IsNotFound},
		{"conflict", Conflict("x"), IsConflict},
		{"validation", Validation("x"), IsValidation},
		{"unauthorized", Unauthorized("x"), IsUnauthorized},
		{"forbidden", Forbidden("x"), IsForbidden},
		{"unavailable", Unavailable("x"), IsUnavailable},
		{"internal", Internal("x"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(errors.New("plain")))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := Forbidden("role not allowed")
	outer := fmt.Errorf("gate: %w", inner)
	assert.True(t, IsForbidden(outer))
	assert.False(t, IsUnauthorized(outer))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, GetCode(Validation("bad")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
}

func TestGetField(t *testing.T) {
	err := ValidationField("email", "email is required")
	assert.Equal(t, "email", GetField(err))
	assert.Empty(t, GetField(Validation("no field")))
}
