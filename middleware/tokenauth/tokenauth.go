// Package tokenauth is the authentication gate placed in front of
// every protected route. It extracts the bearer token, validates it
// as an access token, and injects the verified identity into the
// request scoped context. On any failure the request never reaches
// the downstream handler.
package tokenauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-router"

	"github.com/LakGar/zones-api/auth"
)

// TokenValidator mirrors auth.TokenService.Validate
type TokenValidator interface {
	Validate(raw string, kind auth.TokenKind) (auth.AuthClaims, error)
}

type Config struct {
	// Filter skips the gate for matching requests
	Filter func(router.Context) bool

	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler

	// ContextKey is the router locals key the claims are stored under
	ContextKey string

	// AuthScheme is the expected authorization scheme, defaults to Bearer.
	// Any other scheme is treated the same as an absent header.
	AuthScheme string

	// Validator is required for token validation
	Validator TokenValidator

	// ContextEnricher propagates the verified identity to the standard
	// Go context. The default attaches identity and claims.
	ContextEnricher func(ctx context.Context, claims auth.AuthClaims) context.Context
}

// New returns the gate as a router middleware.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := getDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := TokenFromHeader(ctx, cfg.AuthScheme)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			claims, err := cfg.Validator.Validate(raw, auth.TokenKindAccess)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			// A cancelled request must not pick up a verified identity.
			if err := ctx.Context().Err(); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, claims)
			ctx.SetContext(cfg.ContextEnricher(ctx.Context(), claims))

			return cfg.SuccessHandler(ctx)
		}
	}
}

// TokenFromHeader extracts the raw token from the authorization
// header. A missing header, an empty value, or a non matching scheme
// all yield ErrNoTokenProvided.
func TokenFromHeader(ctx router.Context, authScheme string) (string, error) {
	header := ctx.GetString(router.HeaderAuthorization, "")
	if header == "" {
		return "", auth.ErrNoTokenProvided
	}

	scheme := strings.TrimSpace(authScheme)
	l := len(scheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], scheme) || header[l] != ' ' {
		return "", auth.ErrNoTokenProvided
	}

	raw := strings.TrimSpace(header[l+1:])
	if raw == "" {
		return "", auth.ErrNoTokenProvided
	}

	return raw, nil
}

func getDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: token middleware configuration: Validator is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			switch {
			case auth.IsTokenExpiredError(err):
				return c.Status(router.StatusUnauthorized).SendString(auth.ErrTokenExpired.Message)
			default:
				return c.Status(router.StatusUnauthorized).SendString(auth.ErrTokenMalformed.Message)
			}
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ContextEnricher == nil {
		cfg.ContextEnricher = func(ctx context.Context, claims auth.AuthClaims) context.Context {
			ctx = auth.WithClaimsContext(ctx, claims)
			return auth.WithIdentity(ctx, auth.IdentityFromClaims(claims))
		}
	}

	return cfg
}
