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

	"github.com/shiftline/workforce/internal/onboard/directory"
	"github.com/shiftline/workforce/internal/onboard/domain"
	httpapi "github.com/shiftline/workforce/internal/onboard/http"
	"github.com/shiftline/workforce/internal/onboard/mail"
	"github.com/shiftline/workforce/internal/onboard/service"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/internal/onboard/store/drivers/sqlite"
	"github.com/shiftline/workforce/pkg/cryptox"
	"github.com/shiftline/workforce/pkg/idx"
	"github.com/shiftline/workforce/pkg/jwtx"
	"github.com/shiftline/workforce/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the onboarding service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	dir    directory.Directory
	signer *jwtx.Signer

	inviteService       *service.InviteService
	tokenService        *service.TokenService
	settingsService     *service.SettingsService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "onboard-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Tokens are signed with an ephemeral per-process key; a restart
	// invalidates outstanding access tokens, which is acceptable at their
	// TTL.
	signer, err := jwtx.GenerateSigner("onboard-" + BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// seedAdmin creates the configured bootstrap admin account if no account
// holds that email yet. Every later account enters through an invite; this
// is only the way the very first operator gets in.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.AdminEmail == "" || app.cfg.AdminPassword == "" {
		return nil
	}

	if _, err := app.dir.FindByEmail(ctx, app.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, directory.ErrNotFound) {
		return err
	}

	account, err := app.dir.CreatePendingAccount(ctx, app.cfg.AdminEmail, domain.RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(app.cfg.AdminPassword)
	if err != nil {
		return err
	}
	if err := app.db.Accounts().SetPasswordHash(ctx, account.ID, hash); err != nil {
		return err
	}

	if err := app.db.Profiles().CreateProfile(ctx, domain.Profile{
		ID:          idx.New().String(),
		AccountID:   account.ID,
		Email:       app.cfg.AdminEmail,
		FullName:    "Administrator",
		Role:        domain.RoleAdmin,
		PasswordSet: true,
	}); err != nil {
		return err
	}

	app.logger.Info("seed admin account created", "email", app.cfg.AdminEmail)
	return nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("onboard service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down onboard service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("onboard service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.dir = directory.NewLocal(app.db)

	sender := mail.NewSender(mail.Config{
		Mode:    app.cfg.MailMode,
		Host:    app.cfg.SMTPHost,
		Port:    app.cfg.SMTPPort,
		From:    app.cfg.MailFrom,
		BaseURL: app.cfg.InviteBaseURL,
	}, app.logger)

	app.inviteService = service.NewInviteService(
		app.db,
		app.dir,
		sender,
		app.logger,
		app.cfg.InviteTTL,
		app.cfg.InviteBaseURL,
	)

	app.tokenService = service.NewTokenService(
		app.dir,
		app.db,
		app.signer,
		app.logger,
		app.cfg.Issuer,
		jwtx.DefaultAccessTokenTTL,
	)

	app.settingsService = service.NewSettingsService(app.db, app.logger)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.signer.Verifier(app.cfg.Issuer),
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.InviteService = app.inviteService
	router.TokenService = app.tokenService
	router.SettingsService = app.settingsService

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
