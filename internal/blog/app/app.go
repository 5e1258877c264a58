package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiblog "github.com/aussiebroadwan/blog/api/blog"
	bloghttp "github.com/aussiebroadwan/blog/internal/blog/http"
	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/internal/blog/store"
	"github.com/aussiebroadwan/blog/internal/blog/store/drivers/postgres"
	"github.com/aussiebroadwan/blog/internal/blog/store/drivers/sqlite"
	"github.com/aussiebroadwan/blog/pkg/cryptox"
	"github.com/aussiebroadwan/blog/pkg/jwtx"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns the blog service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	tokenService *service.TokenService
	userService  *service.UserService
	postService  *service.PostService

	server *http.Server
	router *bloghttp.Router
}

// New wires the application from cfg. Nothing listens until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "blog",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the HTTP server and blocks until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.logger.Info("blog service starting",
		"port", app.cfg.Port,
		"base_path", app.cfg.BasePath,
		"database", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests for up to ShutdownGracePeriod, then
// closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("blog service stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.postService = &service.PostService{Store: app.db}
}

func (app *Application) initHTTP() {
	apiblog.SwaggerInfo.BasePath = app.cfg.BasePath

	router := bloghttp.NewRouter(
		app.keyManager,
		app.cfg.BasePath,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigins,
		app.cfg.RateLimits,
	)
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.PostService = app.postService
	router.LegacySaveErrors = app.cfg.LegacySaveErrors
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
