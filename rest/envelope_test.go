package rest

import (
	stderrors "errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LakGar/zones-api/auth"
)

func TestErrorBodyMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid credentials",
			err:        auth.ErrMismatchedHashAndPassword,
			wantStatus: router.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "expired token",
			err:        auth.ErrTokenExpired,
			wantStatus: router.StatusUnauthorized,
			wantCode:   "TOKEN_EXPIRED",
		},
		{
			name:       "missing token",
			err:        auth.ErrNoTokenProvided,
			wantStatus: router.StatusUnauthorized,
			wantCode:   "TOKEN_MISSING",
		},
		{
			name:       "duplicate account",
			err:        auth.ErrAccountExists,
			wantStatus: router.StatusConflict,
			wantCode:   "ACCOUNT_EXISTS",
		},
		{
			name:       "not found",
			err:        auth.ErrIdentityNotFound,
			wantStatus: router.StatusNotFound,
			wantCode:   "IDENTITY_NOT_FOUND",
		},
		{
			name:       "rate limited",
			err:        auth.ErrTooManyLoginAttempts,
			wantStatus: router.StatusTooManyRequests,
			wantCode:   "TOO_MANY_ATTEMPTS",
		},
		{
			name:       "bad input",
			err:        auth.ErrUnableToParseData,
			wantStatus: router.StatusBadRequest,
			wantCode:   "UNPARSABLE_DATA",
		},
		{
			name:       "authz",
			err:        errors.New("not allowed", errors.CategoryAuthz),
			wantStatus: router.StatusForbidden,
			wantCode:   string(errors.CategoryAuthz),
		},
		{
			name:       "internal",
			err:        errors.New("boom", errors.CategoryInternal),
			wantStatus: router.StatusInternalServerError,
			wantCode:   string(errors.CategoryInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorBody(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
			assert.Nil(t, body.Details)
		})
	}
}

func TestErrorBodyValidation(t *testing.T) {
	verr := validation.Errors{
		"email":    stderrors.New("must be a valid email address"),
		"password": stderrors.New("the length must be between 10 and 100"),
	}

	status, body := errorBody(verr)

	assert.Equal(t, router.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, verr, body.Details)
}

func TestErrorBodyUnknownError(t *testing.T) {
	status, body := errorBody(stderrors.New("sql: connection refused"))

	assert.Equal(t, router.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Message)
	// Internals never leak through the envelope
	assert.NotContains(t, body.Message, "sql")
}

func TestErrorBodyWrappedError(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("jwt parse failure"), auth.ErrTokenMalformed.Category, auth.ErrTokenMalformed.Message).
		WithTextCode(auth.ErrTokenMalformed.TextCode)

	status, body := errorBody(wrapped)

	assert.Equal(t, router.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_INVALID", body.Code)
	assert.Equal(t, "Invalid token", body.Message)
}

func TestRequestIDMiddleware(t *testing.T) {
	mw := RequestIDMiddleware()
	handler := mw(func(ctx router.Context) error { return ctx.Next() })

	t.Run("honors a client supplied id", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", RequestIDHeader, "").Return("client-supplied-id")
		ctx.On("Locals", requestIDKey, "client-supplied-id").Return(nil)
		ctx.On("SetHeader", RequestIDHeader, "client-supplied-id").Return(ctx)

		assert.NoError(t, handler(ctx))
		assert.True(t, ctx.NextCalled)
		ctx.AssertExpectations(t)
	})

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		var tagged, echoed string

		ctx := router.NewMockContext()
		ctx.On("GetString", RequestIDHeader, "").Return("")
		ctx.On("Locals", requestIDKey, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				tagged = args.String(1)
			}).Return(nil)
		ctx.On("SetHeader", RequestIDHeader, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				echoed = args.String(1)
			}).Return(ctx)

		assert.NoError(t, handler(ctx))
		assert.True(t, ctx.NextCalled)

		_, err := uuid.Parse(echoed)
		assert.NoError(t, err, "generated request id should be a uuid")
		assert.Equal(t, tagged, echoed, "response echoes the id tagged on the request")
	})
}
