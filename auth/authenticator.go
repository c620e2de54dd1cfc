package auth

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UserStore is the slice of the credential store the session issuer needs
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// RegisterUserInput carries the attributes of a new account
type RegisterUserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Auther orchestrates registration, login, refresh rotation, logout,
// and password changes. It holds no cross request mutable state.
type Auther struct {
	provider     IdentityProvider
	store        UserStore
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, store UserStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetAccessTokenTTL(),
		opts.GetRefreshTokenTTL(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService overrides the token service, mostly for tests that
// need a distinct secret or custom lifetimes.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a new credential record and issues the first token
// pair. A duplicate email fails with ErrAccountExists.
func (s *Auther) Register(ctx context.Context, input RegisterUserInput) (*TokenPair, error) {
	if _, err := s.store.GetByIdentifier(ctx, input.Email); err == nil {
		s.logger.Warn("Register duplicate account", "email_domain", emailDomain(input.Email))
		return nil, ErrAccountExists
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing account")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
	}

	if id, err := hashid.NewUUID(input.Email); err == nil {
		user.ID = id
	}

	created, err := s.store.Register(ctx, user)
	if err != nil {
		// The unique email index closes the check-then-create race.
		if IsDuplicateRecordError(err) {
			return nil, ErrAccountExists
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	return s.issuePair(NewIdentityFromUser(created))
}

// Login verifies the credentials and issues a token pair.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return nil, ErrIdentityNotFound
	}

	return s.issuePair(identity)
}

// Refresh validates a refresh token and rotates the pair. The
// superseded refresh token carries no revocation state and remains
// valid until its natural expiry.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenService.Validate(refreshToken, TokenKindRefresh)
	if err != nil {
		s.logger.Error("Refresh token validation failed", "error", err)
		return nil, err
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, claims.UserID())
	if err != nil {
		s.logger.Error("Refresh subject lookup failed", "error", err)
		return nil, errors.Wrap(err, errors.CategoryAuth, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	return s.issuePair(identity)
}

// Logout is best effort: tokens are stateless and self verifying, so
// the contract is that the client discards its pair. We only log the
// event for auditability.
func (s *Auther) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokenService.Validate(raw, TokenKindAccess)
	if err != nil {
		s.logger.Debug("Logout with unverifiable token")
		return nil
	}

	s.logger.Info("Logout", "user_id", claims.UserID())
	return nil
}

// ChangePassword verifies the current password and replaces the
// stored hash. Previously issued tokens are not revoked.
func (s *Auther) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.store.GetByIdentifier(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	if err := ComparePasswordAndHash(currentPassword, user.PasswordHash); err != nil {
		s.logger.Warn("ChangePassword current password mismatch", "user_id", user.ID.String())
		return ErrMismatchedHashAndPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.ResetPassword(ctx, user.ID, hash)
}

func (s *Auther) issuePair(identity Identity) (*TokenPair, error) {
	pair, err := s.tokenService.GeneratePair(identity)
	if err != nil {
		s.logger.Error("failed to issue token pair", "error", err)
		return nil, err
	}
	return pair, nil
}

func emailDomain(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}

var _ Authenticator = (*Auther)(nil)
