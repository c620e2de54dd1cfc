package auth_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	"github.com/LakGar/zones-api/auth"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured token expired error",
			err:      auth.ErrTokenExpired,
			expected: true,
		},
		{
			name:     "Legacy token expired error (string match)",
			err:      errors.New("some wrapper: token is expired"),
			expected: true,
		},
		{
			name:     "Different structured error",
			err:      auth.ErrIdentityNotFound,
			expected: false,
		},
		{
			name:     "Kind mismatch is not expiry",
			err:      auth.ErrTokenKindMismatch,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.IsTokenExpiredError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsInvalidTokenError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Structured malformed error",
			err:      auth.ErrTokenMalformed,
			expected: true,
		},
		{
			name:     "Structured kind mismatch error",
			err:      auth.ErrTokenKindMismatch,
			expected: true,
		},
		{
			name:     "Legacy malformed error (string match)",
			err:      errors.New("token is malformed"),
			expected: true,
		},
		{
			name:     "Legacy missing JWT error (string match)",
			err:      errors.New("missing or malformed JWT"),
			expected: true,
		},
		{
			name:     "Expired token is not invalid",
			err:      auth.ErrTokenExpired,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.IsInvalidTokenError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStructuredErrorProperties(t *testing.T) {
	t.Run("ErrIdentityNotFound", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, auth.ErrIdentityNotFound.Category)
		assert.Equal(t, "IDENTITY_NOT_FOUND", auth.ErrIdentityNotFound.TextCode)
	})

	t.Run("ErrMismatchedHashAndPassword", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, auth.ErrMismatchedHashAndPassword.Category)
		assert.Equal(t, "INVALID_CREDENTIALS", auth.ErrMismatchedHashAndPassword.TextCode)
		assert.Equal(t, "Invalid credentials", auth.ErrMismatchedHashAndPassword.Message)
	})

	t.Run("ErrAccountExists", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryConflict, auth.ErrAccountExists.Category)
		assert.Equal(t, "ACCOUNT_EXISTS", auth.ErrAccountExists.TextCode)
	})

	t.Run("ErrTooManyLoginAttempts", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryRateLimit, auth.ErrTooManyLoginAttempts.Category)
		assert.Equal(t, "TOO_MANY_ATTEMPTS", auth.ErrTooManyLoginAttempts.TextCode)
	})

	t.Run("ErrTokenExpired", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, auth.ErrTokenExpired.Category)
		assert.Equal(t, "TOKEN_EXPIRED", auth.ErrTokenExpired.TextCode)
		assert.Equal(t, "Token expired", auth.ErrTokenExpired.Message)
	})

	t.Run("ErrTokenMalformed", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, auth.ErrTokenMalformed.Category)
		assert.Equal(t, "TOKEN_INVALID", auth.ErrTokenMalformed.TextCode)
		assert.Equal(t, "Invalid token", auth.ErrTokenMalformed.Message)
	})

	t.Run("ErrTokenKindMismatch shares the public message", func(t *testing.T) {
		// Callers should not learn which check failed
		assert.Equal(t, auth.ErrTokenMalformed.Message, auth.ErrTokenKindMismatch.Message)
		assert.Equal(t, "TOKEN_KIND_MISMATCH", auth.ErrTokenKindMismatch.TextCode)
	})

	t.Run("ErrNoTokenProvided", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, auth.ErrNoTokenProvided.Category)
		assert.Equal(t, "TOKEN_MISSING", auth.ErrNoTokenProvided.TextCode)
	})

	t.Run("ErrNoEmptyString", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryValidation, auth.ErrNoEmptyString.Category)
	})

	t.Run("ErrUnableToParseData", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryBadInput, auth.ErrUnableToParseData.Category)
	})
}

func TestIsDuplicateRecordError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "sqlite unique constraint",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			expected: true,
		},
		{
			name:     "postgres unique violation",
			err:      errors.New(`duplicate key value violates unique constraint "users_email_key"`),
			expected: true,
		},
		{
			name:     "structured conflict",
			err:      goerrors.New("record exists", goerrors.CategoryConflict),
			expected: true,
		},
		{
			name:     "transient store error",
			err:      errors.New("disk I/O error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.IsDuplicateRecordError(tt.err))
		})
	}
}
