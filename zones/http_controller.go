package zones

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"

	"github.com/LakGar/zones-api/auth"
	"github.com/LakGar/zones-api/rest"
)

// HTTPController handles the zone CRUD routes. Every handler trusts
// the identity the gate injected and scopes queries to it.
type HTTPController struct {
	Logger auth.Logger
	Repo   RepositoryManager
}

func NewHTTPController(repo RepositoryManager, logger auth.Logger) *HTTPController {
	if logger == nil {
		logger = auth.NopLogger{}
	}

	return &HTTPController{
		Logger: logger,
		Repo:   repo,
	}
}

// RegisterRoutes mounts the zone endpoints behind the gate.
func (c *HTTPController) RegisterRoutes(app rest.RouteRegistrar, gate router.MiddlewareFunc) {
	app.Get("/zones", c.List, gate)
	app.Post("/zones", c.Create, gate)
	app.Get("/zones/:id", c.Show, gate)
	app.Put("/zones/:id", c.Update, gate)
	app.Delete("/zones/:id", c.Delete, gate)
	app.Get("/zones/:id/activities", c.ListActivities, gate)
	app.Post("/zones/:id/activities", c.RecordActivity, gate)
}

// ZoneRequest payload, shared by create and update
type ZoneRequest struct {
	Name          string  `form:"name" json:"name"`
	Latitude      float64 `form:"latitude" json:"latitude"`
	Longitude     float64 `form:"longitude" json:"longitude"`
	RadiusM       float64 `form:"radius_m" json:"radius_m"`
	NotifyOnEnter bool    `form:"notify_on_enter" json:"notify_on_enter"`
	NotifyOnExit  bool    `form:"notify_on_exit" json:"notify_on_exit"`
}

// Validate will run validation rules
func (r ZoneRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.RadiusM, validation.Required, validation.Min(5.0), validation.Max(100000.0)),
	)
}

func (c *HTTPController) List(ctx router.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	records, err := c.Repo.Zones().ListByUser(ctx.Context(), userID)
	if err != nil {
		c.Logger.Error("zones list", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, records)
}

func (c *HTTPController) Create(ctx router.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	payload := new(ZoneRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("zones create parse payload", "error", err)
		return rest.Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return rest.Fail(ctx, err)
	}

	record := &Zone{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          payload.Name,
		Latitude:      payload.Latitude,
		Longitude:     payload.Longitude,
		RadiusM:       payload.RadiusM,
		NotifyOnEnter: payload.NotifyOnEnter,
		NotifyOnExit:  payload.NotifyOnExit,
	}

	created, err := c.Repo.Zones().Create(ctx.Context(), record)
	if err != nil {
		c.Logger.Error("zones create", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, created)
}

func (c *HTTPController) Show(ctx router.Context) error {
	userID, zoneID, err := requireOwnedZoneIDs(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	record, err := c.Repo.Zones().GetOwned(ctx.Context(), zoneID, userID)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, record)
}

func (c *HTTPController) Update(ctx router.Context) error {
	userID, zoneID, err := requireOwnedZoneIDs(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	payload := new(ZoneRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("zones update parse payload", "error", err)
		return rest.Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return rest.Fail(ctx, err)
	}

	record, err := c.Repo.Zones().GetOwned(ctx.Context(), zoneID, userID)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	record.Name = payload.Name
	record.Latitude = payload.Latitude
	record.Longitude = payload.Longitude
	record.RadiusM = payload.RadiusM
	record.NotifyOnEnter = payload.NotifyOnEnter
	record.NotifyOnExit = payload.NotifyOnExit

	updated, err := c.Repo.Zones().Update(ctx.Context(), record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		c.Logger.Error("zones update", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, updated)
}

func (c *HTTPController) Delete(ctx router.Context) error {
	userID, zoneID, err := requireOwnedZoneIDs(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	record, err := c.Repo.Zones().GetOwned(ctx.Context(), zoneID, userID)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	if err := c.Repo.Zones().Delete(ctx.Context(), record); err != nil {
		c.Logger.Error("zones delete", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, map[string]any{
		"message": "Zone deleted",
	})
}

// RecordActivityRequest payload
type RecordActivityRequest struct {
	Kind       ActivityKind `form:"kind" json:"kind"`
	OccurredAt *time.Time   `form:"occurred_at" json:"occurred_at"`
}

// Validate will run validation rules
func (r RecordActivityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.In(ActivityEnter, ActivityExit)),
	)
}

func (c *HTTPController) ListActivities(ctx router.Context) error {
	userID, zoneID, err := requireOwnedZoneIDs(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	if _, err := c.Repo.Zones().GetOwned(ctx.Context(), zoneID, userID); err != nil {
		return rest.Fail(ctx, err)
	}

	records, err := c.Repo.Activities().ListByZone(ctx.Context(), zoneID, userID)
	if err != nil {
		c.Logger.Error("zone activities list", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, records)
}

func (c *HTTPController) RecordActivity(ctx router.Context) error {
	userID, zoneID, err := requireOwnedZoneIDs(ctx)
	if err != nil {
		return rest.Fail(ctx, err)
	}

	payload := new(RecordActivityRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("zone activity parse payload", "error", err)
		return rest.Fail(ctx, auth.ErrUnableToParseData)
	}

	if err := payload.Validate(); err != nil {
		return rest.Fail(ctx, err)
	}

	if _, err := c.Repo.Zones().GetOwned(ctx.Context(), zoneID, userID); err != nil {
		return rest.Fail(ctx, err)
	}

	record := &Activity{
		ID:         uuid.New(),
		ZoneID:     zoneID,
		UserID:     userID,
		Kind:       payload.Kind,
		OccurredAt: payload.OccurredAt,
	}

	created, err := c.Repo.Activities().Create(ctx.Context(), record)
	if err != nil {
		c.Logger.Error("zone activity create", "error", err)
		return rest.Fail(ctx, err)
	}

	return rest.OK(ctx, router.StatusOK, created)
}

func requireUserID(ctx router.Context) (uuid.UUID, error) {
	identity, ok := auth.IdentityFromContext(ctx.Context())
	if !ok {
		return uuid.Nil, auth.ErrNoTokenProvided
	}

	userID, err := uuid.Parse(identity.ID())
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid subject identifier")
	}

	return userID, nil
}

func requireOwnedZoneIDs(ctx router.Context) (userID, zoneID uuid.UUID, err error) {
	userID, err = requireUserID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	zoneID, err = uuid.Parse(ctx.Param("id", ""))
	if err != nil {
		return uuid.Nil, uuid.Nil, goerrors.New("invalid zone id", goerrors.CategoryBadInput).
			WithTextCode("INVALID_ZONE_ID")
	}

	return userID, zoneID, nil
}
