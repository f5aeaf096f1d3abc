package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/selomitta/agenda-be/internal/api"
	"github.com/selomitta/agenda-be/internal/auth"
	"github.com/selomitta/agenda-be/internal/config"
	"github.com/selomitta/agenda-be/internal/database"
	"github.com/selomitta/agenda-be/internal/logger"
	"github.com/selomitta/agenda-be/internal/monitoring"
	"github.com/selomitta/agenda-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)
	sessionService := services.NewSessionService(db)

	// The signing key is loaded once here and injected; nothing reads it
	// from the environment afterwards.
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Set up and run the background denylist pruner
	pruner, err := monitoring.NewTokenPruner(sessionService, cfg.PruneSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.PruneSchedule).Msg("Invalid prune schedule")
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(cfg, issuer, userService, taskService, sessionService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
