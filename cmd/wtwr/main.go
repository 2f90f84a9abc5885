package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/wtwr-backend/internal/config"
	"github.com/deppfellow/wtwr-backend/internal/database"
	"github.com/deppfellow/wtwr-backend/internal/handler"
	"github.com/deppfellow/wtwr-backend/internal/logger"
	"github.com/deppfellow/wtwr-backend/internal/repository"
	"github.com/deppfellow/wtwr-backend/internal/router"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/deppfellow/wtwr-backend/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	DefaultContextTimeout = 30
	MigrationTimeout      = 60
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// New Relic first, so the logger can forward to it.
	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	appLogger := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Database.Driver == config.DriverPostgres {
		ctx, cancel := context.WithTimeout(context.Background(), MigrationTimeout*time.Second)
		err := database.Migrate(ctx, &appLogger, cfg)
		cancel()
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(cfg, &appLogger, loggerService)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server exited properly")
}
