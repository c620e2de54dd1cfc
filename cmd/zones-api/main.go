package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/LakGar/zones-api/auth"
	"github.com/LakGar/zones-api/internal/config"
	"github.com/LakGar/zones-api/middleware/tokenauth"
	"github.com/LakGar/zones-api/rest"
	"github.com/LakGar/zones-api/zones"
)

type App struct {
	config *config.Config
	bunDB  *bun.DB
	auther auth.Authenticator
	repo   auth.RepositoryManager
	zones  zones.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("zones"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	boot := lgr.GetLogger("boot")

	cfg, err := config.New()
	if err != nil {
		boot.Error("config load", "error", err)
		os.Exit(1)
	}

	fmt.Println(print.MaybeHighlightJSON(map[string]any{
		"addr":              cfg.Addr,
		"dsn":               cfg.DSN,
		"access_token_ttl":  cfg.GetAccessTokenTTL().String(),
		"refresh_token_ttl": cfg.GetRefreshTokenTTL().String(),
		"issuer":            cfg.GetIssuer(),
	}))

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		boot.Error("persistence setup", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		boot.Error("server setup", "error", err)
		os.Exit(1)
	}

	app.srv.Serve(cfg.Addr)

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, app.config.DSN)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	models := []any{
		(*auth.User)(nil),
		(*zones.Zone)(nil),
		(*zones.Activity)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	app.bunDB = db
	app.repo = auth.NewRepositoryManager(db)
	app.zones = zones.NewRepositoryManager(db)

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	cfg := app.config

	if err := app.repo.Validate(); err != nil {
		return err
	}

	store := auth.NewRepoUserStore(app.repo.Users())

	provider := auth.NewUserProvider(store)
	provider.WithLogger(app.GetLogger("auth:prv"))

	auther := auth.NewAuthenticator(provider, store, cfg)
	auther.WithLogger(app.GetLogger("auth:core"))
	app.auther = auther

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
			AppName:       "zones-api",
		}))
	})

	srv.Router().Use(rest.RequestIDMiddleware())

	gate := tokenauth.New(tokenauth.Config{
		Validator:    auther.TokenService(),
		ContextKey:   cfg.GetContextKey(),
		AuthScheme:   cfg.GetAuthScheme(),
		ErrorHandler: rest.Fail,
	})

	authController := rest.NewAuthController(auther,
		rest.WithAuthLogger(app.GetLogger("auth:ctrl")),
		rest.WithAuthScheme(cfg.GetAuthScheme()))
	authController.RegisterRoutes(srv.Router(), gate)

	usersController := rest.NewUsersController(auther, app.repo.Users(),
		app.GetLogger("users:ctrl"))
	usersController.RegisterRoutes(srv.Router(), gate)

	zonesController := zones.NewHTTPController(app.zones,
		app.GetLogger("zones:ctrl"))
	zonesController.RegisterRoutes(srv.Router(), gate)

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
