package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrMismatchedHashAndPassword is returned for any failed credential
// check. Unknown account and wrong password intentionally collapse
// into this single value so callers cannot enumerate accounts.
var ErrMismatchedHashAndPassword = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS")

// ErrAccountExists duplicate registration for an email that already has an account
var ErrAccountExists = errors.New("An account with this email already exists", errors.CategoryConflict).
	WithTextCode("ACCOUNT_EXISTS")

// ErrTooManyLoginAttempts login attempts above threshold within the cool down window
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithTextCode("TOO_MANY_ATTEMPTS")

// ErrTokenExpired signature checks out but the token is past its expiry
var ErrTokenExpired = errors.New("Token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed bad structure, bad signature, or undecodable claims
var ErrTokenMalformed = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode("TOKEN_INVALID")

// ErrTokenKindMismatch a valid token presented where the other kind is required
var ErrTokenKindMismatch = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode("TOKEN_KIND_MISMATCH")

// ErrNoTokenProvided missing or non Bearer authorization header
var ErrNoTokenProvided = errors.New("No token provided", errors.CategoryAuth).
	WithTextCode("TOKEN_MISSING")

// ErrUserSuspended account exists but is not allowed to authenticate
var ErrUserSuspended = errors.New("account is suspended", errors.CategoryAuth).
	WithTextCode("ACCOUNT_SUSPENDED")

// ErrNoEmptyString empty input where a value is required
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryValidation).
	WithTextCode("EMPTY_STRING")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data", errors.CategoryBadInput).
	WithTextCode("UNPARSABLE_DATA")

// IsDuplicateRecordError reports whether a store error is a unique
// constraint violation rather than an operational failure. Covers the
// sqlite and postgres driver messages bun surfaces.
func IsDuplicateRecordError(err error) bool {
	if err == nil {
		return false
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.Category == errors.CategoryConflict {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == ErrTokenExpired.TextCode {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsInvalidTokenError will check for malformed, tampered, or wrong kind tokens
func IsInvalidTokenError(err error) bool {
	if err == nil {
		return false
	}

	var rich *errors.Error
	if errors.As(err, &rich) {
		switch rich.TextCode {
		case ErrTokenMalformed.TextCode, ErrTokenKindMismatch.TextCode:
			return true
		}
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
