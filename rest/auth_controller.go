package rest

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"

	"github.com/LakGar/zones-api/auth"
	"github.com/LakGar/zones-api/middleware/tokenauth"
)

// RouteRegistrar captures the router methods used by the controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// AuthController handles the session endpoints.
type AuthController struct {
	Debug      bool
	Logger     auth.Logger
	Auther     auth.Authenticator
	AuthScheme string
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthLogger(l auth.Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

// WithAuthScheme sets the authorization scheme the logout handler
// expects. It must match the scheme the gate is configured with.
func WithAuthScheme(scheme string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if scheme != "" {
			c.AuthScheme = scheme
		}
		return c
	}
}

func NewAuthController(auther auth.Authenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     auth.NopLogger{},
		Auther:     auther,
		AuthScheme: "Bearer",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterRoutes mounts the session endpoints. Logout sits behind the
// gate; the other three are reachable without a token.
func (a *AuthController) RegisterRoutes(app RouteRegistrar, gate router.MiddlewareFunc) {
	app.Post("/auth/register", a.Register)
	app.Post("/auth/login", a.Login)
	app.Post("/auth/refresh", a.Refresh)
	app.Post("/auth/logout", a.Logout, gate)
}

// RegisterRequest payload
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Username, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(10, 100)),
	)
}

func (a *AuthController) Register(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return Fail(ctx, err)
	}

	if a.Debug {
		a.Logger.Debug("register payload %s", print.MaybePrettyJSON(payload))
	}

	pair, err := a.Auther.Register(ctx.Context(), auth.RegisterUserInput{
		Name:     payload.Name,
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		a.Logger.Error("register user", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, pair)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) Login(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return Fail(ctx, err)
	}

	pair, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("login", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, pair)
}

// RefreshRequest payload
type RefreshRequest struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

// Validate will run validation rules
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

func (a *AuthController) Refresh(ctx router.Context) error {
	payload := new(RefreshRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("refresh parse payload", "error", err)
		return Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return Fail(ctx, err)
	}

	pair, err := a.Auther.Refresh(ctx.Context(), payload.RefreshToken)
	if err != nil {
		a.Logger.Error("refresh", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, pair)
}

func (a *AuthController) Logout(ctx router.Context) error {
	raw, err := tokenauth.TokenFromHeader(ctx, a.AuthScheme)
	if err != nil {
		return Fail(ctx, err)
	}

	if err := a.Auther.Logout(ctx.Context(), raw); err != nil {
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, map[string]any{
		"message": "Logged out",
	})
}
