package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field",
			field:    "userId",
			message:  "is required",
			expected: "validation error on field 'userId': is required",
		},
		{
			name:     "coordinate",
			field:    "x",
			message:  "must be a finite number",
			expected: "validation error on field 'x': must be a finite number",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_IsValidationFailed(t *testing.T) {
	err := fmt.Errorf("create reaction: %w", &ValidationError{Field: "emoji", Message: "is required"})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsValidation(err))

	var vErr *ValidationError
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "emoji", vErr.Field)
	}
}

func TestIsValidation(t *testing.T) {
	assert.False(t, IsValidation(nil))
	assert.False(t, IsValidation(ErrUpstream))
	assert.False(t, IsValidation(ErrValidationFailed))
	assert.True(t, IsValidation(&ValidationError{Field: "x"}))
}

func TestSentinelErrors_Uniqueness(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrValidationFailed, ErrUpstream}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
