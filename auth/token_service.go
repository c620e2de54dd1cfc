package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenPair is the unit of issuance: both tokens are minted in the
// same instant for the same identity.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

// NewTokenService creates a new TokenService instance. The signing
// key is the single trust root, injected once and read only after.
func NewTokenService(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, audience jwt.ClaimStrings, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		audience:   audience,
		logger:     logger,
	}
}

// Generate creates a signed token of the given kind carrying the identity claims
func (ts *TokenServiceImpl) Generate(identity Identity, kind TokenKind, ttl time.Duration) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := ts.newClaims(identity, kind, now, ttl)

	return ts.signClaims(claims)
}

// GeneratePair issues an access and a refresh token bound to the same
// identity, stamped with the same issuance instant.
func (ts *TokenServiceImpl) GeneratePair(identity Identity) (*TokenPair, error) {
	if identity == nil {
		return nil, errors.New("identity must not be nil", errors.CategoryInternal)
	}

	now := time.Now()

	access, err := ts.signClaims(ts.newClaims(identity, TokenKindAccess, now, ts.accessTTL))
	if err != nil {
		return nil, err
	}

	refresh, err := ts.signClaims(ts.newClaims(identity, TokenKindRefresh, now, ts.refreshTTL))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (ts *TokenServiceImpl) newClaims(identity Identity, kind TokenKind, now time.Time, ttl time.Duration) *SessionClaims {
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:       identity.ID(),
		UserEmail: identity.Email(),
		UserName:  identity.Username(),
		TokenType: kind,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

func (ts *TokenServiceImpl) signClaims(claims *SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signedString, nil
}

// Validate parses and validates a token string against the expected
// kind, returning structured claims. Checks run in order: signature,
// kind, expiry; each is a precondition for the next.
func (ts *TokenServiceImpl) Validate(raw string, kind TokenKind) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Signature verified; kind still decides between the
			// expired and wrong-kind outcomes.
			if token != nil {
				if claims, ok := token.Claims.(*SessionClaims); ok && claims.Kind() != kind {
					return nil, ErrTokenKindMismatch
				}
			}
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if claims.Kind() != kind {
		ts.logger.Error("TokenService validate token kind mismatch", "want", kind, "got", claims.Kind())
		return nil, ErrTokenKindMismatch
	}

	return claims, nil
}
