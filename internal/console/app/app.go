package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/domain"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/resources"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/security"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/session"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/state"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/store/drivers/sqlite"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/cryptox"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the console runtime: local state store, session and
// CSRF guard, security recorder, API client, auth manager and the
// per-screen resource controllers.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	tracker  *session.Tracker
	guard    *session.Guard
	recorder *security.Recorder
	signal   *state.LogoutSignal
	client   *api.Client

	Auth      *state.AuthManager
	Navigator *state.Navigator

	Dashboard       *resources.Dashboard
	Applications    *resources.Applications
	Users           *resources.Users
	Certificates    *resources.Certificates
	Payments        *resources.Payments
	TeacherPayments *resources.TeacherPayments
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("CONSOLE_API_BASE_URL is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "updevic-console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initSession()
	app.initClient()
	app.initControllers()

	return app, nil
}

// Run initializes auth state, logs the outcome, and blocks until a
// shutdown signal arrives.
func (app *Application) Run() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if err := app.Auth.Init(ctx); err != nil {
		return fmt.Errorf("auth init failed: %w", err)
	}

	status := "unauthenticated"
	if user, ok := app.Auth.CurrentUser(); ok {
		status = "authenticated"
		app.logger.Info("console started", "status", status, "user", user.Email, "version", BuildVersion)
	} else {
		app.logger.Info("console started", "status", status, "version", BuildVersion)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	app.logger.Info("shutdown signal received", "signal", sig)

	return app.Shutdown()
}

// Shutdown tears the runtime down in dependency order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	app.Auth.Close()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing state database", "error", err)
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

// Credentials exposes the persisted credential store.
func (app *Application) Credentials() store.Credentials {
	return app.db.Credentials()
}

// RecentSecurityEvents returns persisted critical events, newest first.
func (app *Application) RecentSecurityEvents(ctx context.Context, limit int) ([]domain.SecurityEvent, error) {
	return app.db.SecurityEvents().Recent(ctx, limit)
}

// BufferedSecurityEvents returns every event recorded this session,
// including the non-critical ones that are never persisted.
func (app *Application) BufferedSecurityEvents() []domain.SecurityEvent {
	return app.recorder.Buffered()
}

func (app *Application) initStore() error {
	master, err := cryptox.LoadMasterKey(app.cfg.MasterKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load master key: %w", err)
	}
	sealer, err := cryptox.NewSealer(master)
	if err != nil {
		return fmt.Errorf("failed to initialize credential sealer: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.StateFile)
	db, err := sqlite.NewStore(dsn, sealer)
	if err != nil {
		return fmt.Errorf("failed to initialize state database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply state migrations: %w", err)
	}

	app.logger.Info("state database migrations applied successfully")
	return nil
}

func (app *Application) initSession() {
	app.tracker = session.NewTracker()
	app.guard = session.NewGuard(app.cfg.Origin, app.cfg.AllowedOrigins, app.tracker)
	app.recorder = security.NewRecorder(app.tracker, app.db.SecurityEvents())
	app.signal = state.NewLogoutSignal()
}

func (app *Application) initClient() {
	app.client = api.NewClient(api.Config{
		BaseURL:           app.cfg.APIBaseURL,
		Timeout:           app.cfg.HTTPTimeout,
		RequestsPerMinute: app.cfg.RequestsPerMin,
	}, app.db.Credentials(), app.guard, app.recorder, app.signal)
}

func (app *Application) initControllers() {
	app.Auth = state.NewAuthManager(app.client, app.db.Credentials(), app.tracker, app.recorder, app.signal)
	app.Navigator = state.NewNavigator(app.Auth, app.recorder)

	app.Dashboard = resources.NewDashboard(app.client)
	app.Applications = resources.NewApplications(app.client)
	app.Users = resources.NewUsers(app.client)
	app.Certificates = resources.NewCertificates(app.client)
	app.Payments = resources.NewPayments(app.client)
	app.TeacherPayments = resources.NewTeacherPayments(app.client)
}
