// Package app wires configuration, storage, services, and the HTTP
// server together and runs the process until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/studybuddy/backend/internal/adapter/localstore"
	"github.com/studybuddy/backend/internal/adapter/postgres"
	diagramrepo "github.com/studybuddy/backend/internal/adapter/postgres/diagram"
	jobrepo "github.com/studybuddy/backend/internal/adapter/postgres/job"
	noterepo "github.com/studybuddy/backend/internal/adapter/postgres/note"
	"github.com/studybuddy/backend/internal/auth"
	"github.com/studybuddy/backend/internal/config"
	"github.com/studybuddy/backend/internal/service/diagram"
	"github.com/studybuddy/backend/internal/service/note"
	"github.com/studybuddy/backend/internal/store/events"
	"github.com/studybuddy/backend/internal/store/jobs"
	"github.com/studybuddy/backend/internal/store/prefs"
	"github.com/studybuddy/backend/internal/transport/middleware"
	"github.com/studybuddy/backend/internal/transport/rest"
	"github.com/studybuddy/backend/migrations"
)

// Run is the application entry point. It loads configuration, connects
// to storage, builds services and stores, and serves HTTP until the
// context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("migrations applied")
	}

	kv, err := localstore.New(cfg.LocalStore.Dir, cfg.LocalStore.Namespace)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	gate := auth.NewPasscodeGate(
		cfg.Auth.PasscodeHash,
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTIssuer,
		cfg.Auth.SessionTTL,
	)

	noteSvc := note.NewService(logger, noterepo.New(pool))
	diagramSvc := diagram.NewService(logger, diagramrepo.New(pool), postgres.NewTxManager(pool))

	jobStore := jobs.New(logger, jobrepo.New(pool))
	jobStore.Load(ctx)

	eventStore := events.New(logger, kv, cfg.LocalStore.OwnerID)
	prefStore := prefs.New(logger, kv)

	handlers := rest.Handlers{
		Auth:     rest.NewAuthHandler(gate, logger),
		Notes:    rest.NewNotesHandler(noteSvc, logger),
		Diagrams: rest.NewDiagramsHandler(diagramSvc, logger),
		Jobs:     rest.NewJobsHandler(jobStore, logger),
		Events:   rest.NewEventsHandler(eventStore, logger),
		Prefs:    rest.NewPrefsHandler(prefStore, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimit),
	)(rest.NewRouter(handlers, middleware.Session(gate)))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
