package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/coachplan/internal/adapters/cache"
	"github.com/zatekoja/coachplan/internal/adapters/database"
	"github.com/zatekoja/coachplan/internal/adapters/events"
	"github.com/zatekoja/coachplan/internal/api/handlers"
	"github.com/zatekoja/coachplan/internal/api/routes"
	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/providers"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/deepseek"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/redis"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
	"github.com/zatekoja/coachplan/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	log.Info().
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Env).
		Msg("Starting API server")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := database.ApplySchema(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	// Initialize Redis client; the API keeps working on the in-process cache tier without it
	var cacheProvider providers.CacheProvider
	var eventBus *events.RedisEventBus
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, running without shared cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient, "coachplan:")
		eventBus = events.NewRedisEventBus(redisClient.Client())
	}

	// Initialize adapters
	weekAdapter := database.NewWeekAdapter(pgClient)
	workoutAdapter := database.NewWorkoutAdapter(pgClient)
	dietAdapter := database.NewDietAdapter(pgClient)
	catalogAdapter := database.NewCachedCatalogAdapter(
		database.NewCatalogAdapter(pgClient),
		cacheProvider,
		cfg.Catalog.CacheTTL,
		cfg.Catalog.LocalSize,
		metrics,
	)

	var bus providers.EventBus
	if eventBus != nil {
		bus = eventBus
	}
	catalogSync := services.NewCatalogSyncService(catalogAdapter, bus)
	if err := catalogSync.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to start catalog sync, local catalog cache relies on TTL")
	}

	if cfg.Generator.APIKey == "" {
		log.Warn().Msg("GENERATOR_API_KEY is not set; generated plans will end in error")
	}
	generator := deepseek.NewClient(&cfg.Generator)

	// Initialize services
	dispatcher := services.NewDispatcher(cfg.Worker.Count, cfg.Worker.QueueSize)
	orchestrator := services.NewGenerationOrchestrator(services.OrchestratorDeps{
		Weeks:      weekAdapter,
		Workouts:   workoutAdapter,
		Diets:      dietAdapter,
		Catalog:    catalogAdapter,
		Generator:  generator,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		RunTimeout: cfg.Worker.RunTimeout,
	})
	manualPlans := services.NewManualPlanService(weekAdapter, catalogAdapter, workoutAdapter, dietAdapter)
	planQueries := services.NewPlanQueryService(weekAdapter, workoutAdapter, dietAdapter)

	// Initialize handlers
	planHandler := handlers.NewPlanHandler(orchestrator, manualPlans, planQueries)
	catalogHandler := handlers.NewCatalogHandler(catalogAdapter)
	healthHandler := handlers.NewHealthHandler(pgClient)

	router := routes.NewRouter(planHandler, catalogHandler, healthHandler, cfg.Server.AllowedOrigins, metrics)

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Let queued generations finish so no week is left in GENERATING
	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Worker.RunTimeout)
	defer drainCancel()
	if err := dispatcher.Stop(drainCtx); err != nil {
		log.Error().Err(err).Msg("Generation jobs still running at shutdown")
	}

	catalogSync.Stop()
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
