package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/infrastructure/auth"
	"jan-server/services/messaging-api/internal/infrastructure/logger"
	"jan-server/services/messaging-api/internal/infrastructure/metrics"
	"jan-server/services/messaging-api/internal/infrastructure/observability"
	"jan-server/services/messaging-api/internal/interfaces/httpserver"
	pkgobservability "jan-server/services/messaging-api/pkg/observability"
)

// @title Messaging API
// @version 1.0
// @description Direct and group threads with messages between registered users.
// @BasePath /
type Application struct {
	httpServer *httpserver.HTTPServer
	storage    *Storage
	otel       *pkgobservability.Provider
	cfg        *config.Config
	log        zerolog.Logger
}

func NewApplication(cfg *config.Config, httpServer *httpserver.HTTPServer, storage *Storage, otel *pkgobservability.Provider, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		storage:    storage,
		otel:       otel,
		cfg:        cfg,
		log:        log,
	}
}

// Start serves until ctx is cancelled, then releases storage and flushes telemetry.
func (a *Application) Start(ctx context.Context) error {
	defer a.close()
	return a.httpServer.Run(ctx)
}

func (a *Application) close() {
	if err := a.storage.Close(); err != nil {
		a.log.Error().Err(err).Msg("close storage")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.otel.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("shutdown telemetry")
	}
}

func newUserService(storage *Storage, otel *pkgobservability.Provider, log zerolog.Logger) user.Service {
	return user.NewService(storage.Users, storage.Tx, log,
		user.WithRecorder(metrics.Recorder{}),
		user.WithUsernameSanitizer(otel.Sanitizer.SanitizeUsername),
	)
}

func newThreadService(cfg *config.Config, storage *Storage, otel *pkgobservability.Provider, log zerolog.Logger) thread.Service {
	return thread.NewService(storage.Threads, storage.Messages, storage.Users, storage.Tx, log,
		thread.WithRecorder(metrics.Recorder{}),
		thread.WithMaxContentLength(cfg.MaxMessageLength),
		thread.WithContentSanitizer(otel.Sanitizer.SanitizeContent),
	)
}

func newReadinessCheck(storage *Storage) httpserver.ReadinessCheck {
	return storage.Ready
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otel, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}

	storage, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	userService := newUserService(storage, otel, log)
	threadService := newThreadService(cfg, storage, otel, log)

	httpServer := httpserver.New(cfg, log, otel, userService, threadService, authValidator, newReadinessCheck(storage))
	app := NewApplication(cfg, httpServer, storage, otel, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
