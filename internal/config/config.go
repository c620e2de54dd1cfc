package config

import (
	"time"

	"github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// Config holds every runtime setting for the service. Values come
// from ZONES_* environment variables with sensible local defaults.
type (
	Config struct {
		HTTP
		Database
		Auth
	}

	HTTP struct {
		Addr string
	}

	Database struct {
		DSN string
	}

	Auth struct {
		SigningKey      string
		AccessTokenTTL  time.Duration
		RefreshTokenTTL time.Duration
		ContextKey      string
		AuthScheme      string
		Issuer          string
		Audience        []string
	}
)

// New loads the configuration from the environment. The signing key
// has no default: a service signing tokens with a guessable key is
// worse than one that refuses to start.
func New() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ZONES")
	v.AutomaticEnv()

	v.SetDefault("addr", ":9876")
	v.SetDefault("dsn", "file:zones.db?cache=shared")
	v.SetDefault("access_token_ttl", "15m")
	v.SetDefault("refresh_token_ttl", "720h")
	v.SetDefault("context_key", "user")
	v.SetDefault("auth_scheme", "Bearer")
	v.SetDefault("issuer", "zones-api")
	v.SetDefault("audience", "zones-app")

	signingKey := v.GetString("SIGNING_KEY")
	if signingKey == "" {
		return nil, errors.New("ZONES_SIGNING_KEY is required", errors.CategoryOperation).
			WithTextCode("MISSING_SIGNING_KEY")
	}

	return &Config{
		HTTP: HTTP{
			Addr: v.GetString("ADDR"),
		},
		Database: Database{
			DSN: v.GetString("DSN"),
		},
		Auth: Auth{
			SigningKey:      signingKey,
			AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
			ContextKey:      v.GetString("CONTEXT_KEY"),
			AuthScheme:      v.GetString("AUTH_SCHEME"),
			Issuer:          v.GetString("ISSUER"),
			Audience:        v.GetStringSlice("AUDIENCE"),
		},
	}, nil
}

func (c *Config) GetSigningKey() string { return c.Auth.SigningKey }

func (c *Config) GetAccessTokenTTL() time.Duration { return c.Auth.AccessTokenTTL }

func (c *Config) GetRefreshTokenTTL() time.Duration { return c.Auth.RefreshTokenTTL }

func (c *Config) GetContextKey() string { return c.Auth.ContextKey }

func (c *Config) GetAuthScheme() string { return c.Auth.AuthScheme }

func (c *Config) GetIssuer() string { return c.Auth.Issuer }

func (c *Config) GetAudience() []string { return c.Auth.Audience }
