package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
		code string
	}{
		{"not found", NewNotFoundError("User", "u-1"), IsNotFound, CodeNotFound},
		{"already exists", NewAlreadyExistsError("User", "alice"), IsAlreadyExists, CodeAlreadyExists},
		{"invalid input", NewInvalidInputError("limit must be positive"), IsInvalidInput, CodeInvalidInput},
		{"conflict", NewConflictError("stale"), IsConflict, CodeConflict},
		{"unauthorized", NewUnauthorizedError("no token"), IsUnauthorized, CodeUnauthorized},
		{"forbidden", NewForbiddenError("account deleted"), IsForbidden, CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.False(t, IsInternalError(tt.err))

			var de *DomainError
			assert.True(t, errors.As(tt.err, &de))
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestNewInternalError_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewInternalError(cause)

	assert.True(t, IsInternalError(err))
	assert.ErrorIs(t, err, cause)

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.NotContains(t, de.UserMessage(), "dial tcp")
}
