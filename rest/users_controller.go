package rest

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/nyaruka/phonenumbers"

	"github.com/LakGar/zones-api/auth"
)

// UsersController handles the authenticated profile endpoints. Every
// route trusts the identity the gate injected; there is no further
// authorization to do for a single user resource.
type UsersController struct {
	Logger auth.Logger
	Auther auth.Authenticator
	Users  auth.Users
}

func NewUsersController(auther auth.Authenticator, users auth.Users, logger auth.Logger) *UsersController {
	if logger == nil {
		logger = auth.NopLogger{}
	}

	return &UsersController{
		Logger: logger,
		Auther: auther,
		Users:  users,
	}
}

// RegisterRoutes mounts the profile endpoints behind the gate.
func (u *UsersController) RegisterRoutes(app RouteRegistrar, gate router.MiddlewareFunc) {
	app.Get("/users/me", u.Show, gate)
	app.Put("/users/me", u.Update, gate)
	app.Put("/users/me/password", u.ChangePassword, gate)
}

func (u *UsersController) Show(ctx router.Context) error {
	identity, ok := auth.IdentityFromContext(ctx.Context())
	if !ok {
		return Fail(ctx, auth.ErrNoTokenProvided)
	}

	user, err := u.Users.GetByIdentifier(ctx.Context(), identity.ID())
	if err != nil {
		u.Logger.Error("users show lookup", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, user)
}

// UpdateProfileRequest payload
type UpdateProfileRequest struct {
	Name     string `form:"name" json:"name"`
	Username string `form:"username" json:"username"`
	Phone    string `form:"phone_number" json:"phone_number"`
}

// Validate will run validation rules
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Username, validation.Length(3, 50)),
		validation.Field(&r.Phone, validation.By(validPhoneNumber)),
	)
}

func validPhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return goerrors.New("must be a valid phone number", goerrors.CategoryValidation)
	}

	return nil
}

func (u *UsersController) Update(ctx router.Context) error {
	identity, ok := auth.IdentityFromContext(ctx.Context())
	if !ok {
		return Fail(ctx, auth.ErrNoTokenProvided)
	}

	payload := new(UpdateProfileRequest)
	if err := ctx.Bind(payload); err != nil {
		u.Logger.Error("users update parse payload", "error", err)
		return Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return Fail(ctx, err)
	}

	user, err := u.Users.GetByIdentifier(ctx.Context(), identity.ID())
	if err != nil {
		return Fail(ctx, err)
	}

	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Username != "" {
		user.Username = payload.Username
	}
	if payload.Phone != "" {
		user.Phone = payload.Phone
	}

	updated, err := u.Users.Update(ctx.Context(), user, repository.UpdateByID(user.ID.String()))
	if err != nil {
		u.Logger.Error("users update", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, updated)
}

// ChangePasswordRequest payload
type ChangePasswordRequest struct {
	CurrentPassword string `form:"currentPassword" json:"currentPassword"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(10, 100)),
	)
}

func (u *UsersController) ChangePassword(ctx router.Context) error {
	identity, ok := auth.IdentityFromContext(ctx.Context())
	if !ok {
		return Fail(ctx, auth.ErrNoTokenProvided)
	}

	payload := new(ChangePasswordRequest)
	if err := ctx.Bind(payload); err != nil {
		u.Logger.Error("change password parse payload", "error", err)
		return Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return Fail(ctx, err)
	}

	if err := u.Auther.ChangePassword(ctx.Context(), identity.ID(), payload.CurrentPassword, payload.NewPassword); err != nil {
		u.Logger.Error("change password", "error", err)
		return Fail(ctx, err)
	}

	return OK(ctx, router.StatusOK, map[string]any{
		"message": "Password updated",
	})
}
