package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/adapters/cache"
	"github.com/zatekoja/coachplan/internal/adapters/database"
	"github.com/zatekoja/coachplan/internal/adapters/events"
	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/providers"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/redis"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
	"github.com/zatekoja/coachplan/pkg/config"
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coachctl",
	Short: "Operator CLI for workout and diet plans",
	Long: `coachctl operates the plan backend from a terminal.

QUICK START:

  $ coachctl seed                                  # Create tables and load the exercise catalog
  $ coachctl week create --student 3               # Open a week for student 3
  $ coachctl generate workout --week 1 --level intermedio --days 4
  $ coachctl fallback --level principiante --focus piernas
  $ coachctl parse output.txt                      # Inspect raw generator output

Configuration is read from the same environment variables as the API server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		env := "production"
		if verbose {
			env = "development"
		}
		observability.InitLogger("coachctl", env)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "human readable debug logs")
}

// store bundles the adapters a command needs. close releases every connection.
type store struct {
	pg          *postgres.Client
	redis       *redis.Client
	weeks       *database.WeekAdapter
	workouts    *database.WorkoutAdapter
	diets       *database.DietAdapter
	rawCatalog  *database.CatalogAdapter
	catalog     *database.CachedCatalogAdapter
	catalogSync *services.CatalogSyncService
	eventBus    *events.RedisEventBus
}

func openStore(ctx context.Context) (*store, error) {
	pg, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	s := &store{
		pg:         pg,
		weeks:      database.NewWeekAdapter(pg),
		workouts:   database.NewWorkoutAdapter(pg),
		diets:      database.NewDietAdapter(pg),
		rawCatalog: database.NewCatalogAdapter(pg),
	}

	var cacheProvider providers.CacheProvider
	var bus providers.EventBus
	if rc, err := redis.NewClient(ctx, &cfg.Redis); err != nil {
		log.Debug().Err(err).Msg("Redis unavailable, catalog cache stays local")
	} else {
		s.redis = rc
		cacheProvider = cache.NewRedisAdapter(rc, "coachplan:")
		s.eventBus = events.NewRedisEventBus(rc.Client())
		bus = s.eventBus
	}

	s.catalog = database.NewCachedCatalogAdapter(s.rawCatalog, cacheProvider, cfg.Catalog.CacheTTL, cfg.Catalog.LocalSize, nil)
	s.catalogSync = services.NewCatalogSyncService(s.catalog, bus)
	return s, nil
}

func (s *store) close() {
	if s.eventBus != nil {
		_ = s.eventBus.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	_ = s.pg.Close()
}
