package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/citasalud/scheduling-api/internal/adapters/cache"
	"github.com/citasalud/scheduling-api/internal/adapters/database"
	"github.com/citasalud/scheduling-api/internal/adapters/providers/directory"
	"github.com/citasalud/scheduling-api/internal/adapters/providers/history"
	"github.com/citasalud/scheduling-api/internal/api/handlers"
	"github.com/citasalud/scheduling-api/internal/api/routes"
	"github.com/citasalud/scheduling-api/internal/application/services"
	"github.com/citasalud/scheduling-api/internal/domain/providers"
	"github.com/citasalud/scheduling-api/internal/infrastructure/clients/postgres"
	redisclient "github.com/citasalud/scheduling-api/internal/infrastructure/clients/redis"
	"github.com/citasalud/scheduling-api/internal/infrastructure/observability"
	"github.com/citasalud/scheduling-api/pkg/config"
)

const migrationFile = "db/migrations/001_init.sql"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Database
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	applyMigration(ctx, pgClient)

	// Redis is optional; without it doctor lookups simply hit the
	// directory on every request.
	var cacheProvider providers.CacheProvider
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, doctor lookups will not be cached")
	} else {
		defer redisCli.Close()
		cacheProvider = cache.NewRedisAdapter(redisCli)
		log.Info().Msg("Redis client initialized")
	}

	// Adapters
	availabilityAdapter := database.NewAvailabilityAdapter(pgClient)
	patientDirectory := directory.NewPatientDirectoryAdapter(cfg.Directory.PatientBaseURL)

	doctorDirectory := directory.NewDoctorDirectoryAdapter(cfg.Directory.DoctorBaseURL)
	if cacheProvider != nil {
		doctorDirectory = directory.NewCachedDoctorDirectory(doctorDirectory, cacheProvider, cfg.Cache.DoctorTTLSeconds)
	}

	historyStore := history.NewHistoryAdapter(cfg.History.BaseURL)

	// Services
	slotRelease := services.NewSlotReleaseService(availabilityAdapter, metrics)
	slotRelease.Start()
	defer slotRelease.Stop()

	schedulingService := services.NewSchedulingService(
		patientDirectory,
		doctorDirectory,
		historyStore,
		availabilityAdapter,
		slotRelease,
	)
	availabilityService := services.NewAvailabilityService(availabilityAdapter)

	// Handlers and router
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	router := routes.NewRouter(schedulingHandler, availabilityHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

// applyMigration creates the disponibilidad table when the migration file
// ships next to the binary; a missing file is not fatal so containerized
// deployments can manage schema externally.
func applyMigration(ctx context.Context, client *postgres.Client) {
	migration, err := os.ReadFile(migrationFile)
	if err != nil {
		log.Warn().Err(err).Msg("migration file not found, skipping")
		return
	}
	if _, err := client.DB().ExecContext(ctx, string(migration)); err != nil {
		log.Warn().Err(err).Msg("migration apply failed")
		return
	}
	log.Info().Msg("migration applied")
}
