// Package main is the entry point for the DriveMapz API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/drivemapz/backend/internal/config"
	"github.com/drivemapz/backend/internal/handler"
	"github.com/drivemapz/backend/internal/middleware"
	"github.com/drivemapz/backend/internal/repo"
	"github.com/drivemapz/backend/internal/service"
	"github.com/drivemapz/backend/migrations"
	"github.com/drivemapz/backend/spec"
)

// maxBodyBytes limits every request body; the largest legitimate payload is a
// stop insert with notes, well under this.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose's programmatic API runs the embedded migrations at startup, so a
	// fresh database is ready without a separate migrate step. goose needs a
	// database/sql handle; a short-lived one is opened just for this.
	if err := migrateUp(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Repositories and services ----------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	stopRepo := repo.NewStopRepo(pool)
	fuelRepo := repo.NewFuelLogRepo(pool)
	tollRepo := repo.NewTollLogRepo(pool)
	trackRepo := repo.NewTrackPointRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	profileRepo := repo.NewCamperProfileRepo(pool)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL)
	tripSvc := service.NewTripService(tripRepo)
	stopSvc := service.NewStopService(tripRepo, stopRepo)
	fuelSvc := service.NewFuelLogService(tripRepo, stopRepo, fuelRepo)
	tollSvc := service.NewTollLogService(tripRepo, tollRepo)
	trackSvc := service.NewTrackService(tripRepo, trackRepo, cfg.TrackMinInterval)
	summarySvc := service.NewSummaryService(tripRepo, stopRepo, fuelRepo, tollRepo, trackRepo)
	profileSvc := service.NewProfileService(profileRepo)
	exportSvc := service.NewExportService(tripRepo, stopRepo)

	srvHandler := handler.NewServer(
		authSvc, tripSvc, stopSvc, fuelSvc, tollSvc,
		trackSvc, summarySvc, profileSvc, exportSvc,
		spec.OpenAPI,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	requireAuth := middleware.NewAuthenticator(authSvc)
	r.Mount("/", srvHandler.Routes(requireAuth))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrateUp applies all embedded migrations against the given database.
func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
