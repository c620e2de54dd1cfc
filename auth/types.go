package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an identity. It is the minimal
// claim set embedded in a token and attached to an authenticated
// request; immutable once issued.
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetContextKey() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Authenticator holds methods to deal with token based sessions
type Authenticator interface {
	Register(ctx context.Context, input RegisterUserInput) (*TokenPair, error)
	Login(ctx context.Context, identifier, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, raw string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// TokenService handles signed token generation and validation
type TokenService interface {
	Generate(identity Identity, kind TokenKind, ttl time.Duration) (string, error)
	GeneratePair(identity Identity) (*TokenPair, error)
	Validate(raw string, kind TokenKind) (AuthClaims, error)
}

// NopLogger discards everything. Useful as a controller default.
type NopLogger struct{}

func (NopLogger) Debug(format string, args ...any) {}
func (NopLogger) Info(format string, args ...any)  {}
func (NopLogger) Warn(format string, args ...any)  {}
func (NopLogger) Error(format string, args ...any) {}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
