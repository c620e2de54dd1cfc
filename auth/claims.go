package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes the two token flavors a pair carries.
type TokenKind string

const (
	// TokenKindAccess is the short lived credential authorizing API requests
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long lived credential used solely to rotate a pair
	TokenKindRefresh TokenKind = "refresh"
)

// AuthClaims represents the verified claim set recovered from a token
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Username() string
	Kind() TokenKind
	Expires() time.Time
	IssuedAt() time.Time
}

// SessionClaims is the concrete implementation of AuthClaims
type SessionClaims struct {
	jwt.RegisteredClaims
	UID       string    `json:"uid,omitempty"`
	UserEmail string    `json:"email,omitempty"`
	UserName  string    `json:"username,omitempty"`
	TokenType TokenKind `json:"kind,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*SessionClaims)(nil)

// Subject returns the subject claim
func (c *SessionClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject claim
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the email claim
func (c *SessionClaims) Email() string {
	return c.UserEmail
}

// Username returns the username claim
func (c *SessionClaims) Username() string {
	return c.UserName
}

// Kind returns the token kind, access or refresh
func (c *SessionClaims) Kind() TokenKind {
	return c.TokenType
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID assigns a random jti when the claims carry none
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

type claimsIdentity struct {
	id       string
	username string
	email    string
}

func (a claimsIdentity) ID() string       { return a.id }
func (a claimsIdentity) Username() string { return a.username }
func (a claimsIdentity) Email() string    { return a.email }

// IdentityFromClaims adapts verified claims into the Identity
// attached to a request context.
func IdentityFromClaims(claims AuthClaims) Identity {
	if claims == nil {
		return nil
	}
	return claimsIdentity{
		id:       claims.UserID(),
		email:    claims.Email(),
		username: claims.Username(),
	}
}
