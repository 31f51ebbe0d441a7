package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

const (
	outcomeGenerated = "generated"
	outcomeFallback  = "fallback"
	outcomeExisting  = "existing"
	outcomeError     = "error"

	defaultRunTimeout  = 5 * time.Minute
	statusWriteTimeout = 10 * time.Second
)

var errEmptyCatalog = errors.New("exercise catalog is empty")

// OrchestratorDeps groups the collaborators of the generation orchestrator
type OrchestratorDeps struct {
	Weeks      repositories.WeekRepository
	Workouts   repositories.WorkoutRepository
	Diets      repositories.DietRepository
	Catalog    repositories.CatalogRepository
	Generator  providers.TextGenerator
	Dispatcher JobSubmitter
	Metrics    *observability.Metrics
	RunTimeout time.Duration
}

// GenerationOrchestrator drives generated workout and diet plans from dispatch to a terminal status
type GenerationOrchestrator struct {
	weeks      repositories.WeekRepository
	workouts   repositories.WorkoutRepository
	diets      repositories.DietRepository
	catalog    repositories.CatalogRepository
	generator  providers.TextGenerator
	dispatcher JobSubmitter
	persister  *PlanPersister
	metrics    *observability.Metrics
	runTimeout time.Duration
}

// NewGenerationOrchestrator creates a new generation orchestrator
func NewGenerationOrchestrator(deps OrchestratorDeps) *GenerationOrchestrator {
	runTimeout := deps.RunTimeout
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	return &GenerationOrchestrator{
		weeks:      deps.Weeks,
		workouts:   deps.Workouts,
		diets:      deps.Diets,
		catalog:    deps.Catalog,
		generator:  deps.Generator,
		dispatcher: deps.Dispatcher,
		persister:  NewPlanPersister(deps.Workouts),
		metrics:    deps.Metrics,
		runTimeout: runTimeout,
	}
}

// DispatchWorkoutGeneration discards the current workout of the week, marks it generating and
// queues a background run. A rejected submission leaves the workout status in error.
func (o *GenerationOrchestrator) DispatchWorkoutGeneration(ctx context.Context, weekID int64, gc entities.GenerationContext) (entities.PlanStatus, error) {
	if _, err := o.weeks.GetByID(ctx, weekID); err != nil {
		return "", err
	}

	if err := o.workouts.ResetForWeek(ctx, weekID); err != nil {
		return "", err
	}

	return o.dispatch(ctx, weekID, entities.PlanKindWorkout, func(jobCtx context.Context) {
		_ = o.RunWorkout(jobCtx, weekID, gc)
	})
}

// DispatchDietGeneration queues a background diet run. A week that already has a diet is
// marked ready and nothing is queued.
func (o *GenerationOrchestrator) DispatchDietGeneration(ctx context.Context, weekID int64, gc entities.GenerationContext) (entities.PlanStatus, error) {
	if _, err := o.weeks.GetByID(ctx, weekID); err != nil {
		return "", err
	}

	exists, err := o.diets.ExistsForWeek(ctx, weekID)
	if err != nil {
		return "", err
	}
	if exists {
		if err := o.weeks.SetStatus(ctx, weekID, entities.PlanKindDiet, entities.PlanStatusReady); err != nil {
			return "", err
		}
		return entities.PlanStatusReady, nil
	}

	return o.dispatch(ctx, weekID, entities.PlanKindDiet, func(jobCtx context.Context) {
		_ = o.RunDiet(jobCtx, weekID, gc)
	})
}

func (o *GenerationOrchestrator) dispatch(ctx context.Context, weekID int64, kind entities.PlanKind, job func(context.Context)) (entities.PlanStatus, error) {
	if err := o.weeks.SetStatus(ctx, weekID, kind, entities.PlanStatusGenerating); err != nil {
		return "", err
	}

	logger := observability.LoggerFromContext(ctx)
	jobCtx := context.WithoutCancel(ctx)
	if err := o.dispatcher.Submit(func() { job(jobCtx) }); err != nil {
		logger.Error().
			Err(err).
			Int64("week_id", weekID).
			Str("kind", string(kind)).
			Msg("failed to queue generation run")
		o.writeStatus(ctx, logger, weekID, kind, entities.PlanStatusError)
		return entities.PlanStatusError, fmt.Errorf("failed to queue %s generation: %w", kind, err)
	}
	return entities.PlanStatusGenerating, nil
}

// RunWorkout generates, resolves and stores the workout of the week. Generator or resolution
// failures fall back to the deterministic plan built from the catalog.
func (o *GenerationOrchestrator) RunWorkout(ctx context.Context, weekID int64, gc entities.GenerationContext) error {
	return o.run(ctx, weekID, entities.PlanKindWorkout, func(ctx context.Context, logger *zerolog.Logger) (string, error) {
		return o.generateWorkout(ctx, logger, weekID, gc)
	})
}

// RunDiet generates and stores the diet of the week, using the fixed template when the
// generator fails or answers blank.
func (o *GenerationOrchestrator) RunDiet(ctx context.Context, weekID int64, gc entities.GenerationContext) error {
	return o.run(ctx, weekID, entities.PlanKindDiet, func(ctx context.Context, logger *zerolog.Logger) (string, error) {
		return o.generateDiet(ctx, logger, weekID, gc)
	})
}

type runFunc func(ctx context.Context, logger *zerolog.Logger) (string, error)

// run executes body with a detached deadline and converts every failure, panics included, into
// an error status for the plan kind.
func (o *GenerationOrchestrator) run(parent context.Context, weekID int64, kind entities.PlanKind, body runFunc) (err error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), o.runTimeout)
	defer cancel()

	ctx, span := observability.StartSpan(ctx, "generation."+string(kind))
	defer span.End()

	logger := observability.RunLogger(ctx, uuid.NewString(), weekID, string(kind))
	start := time.Now()
	outcome := outcomeError

	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInternalError("generation run panicked", fmt.Errorf("%v", r))
			outcome = outcomeError
		}

		duration := time.Since(start)
		if err != nil {
			observability.RecordError(span, err)
			logger.Error().Err(err).Dur("duration", duration).Msg("generation run failed")
			o.writeStatus(ctx, logger, weekID, kind, entities.PlanStatusError)
		} else {
			logger.Info().Str("outcome", outcome).Dur("duration", duration).Msg("generation run finished")
		}
		observability.RecordGenerationRun(ctx, o.metrics, string(kind), outcome, duration)
	}()

	logger.Info().Msg("generation run started")
	outcome, err = body(ctx, logger)
	return err
}

func (o *GenerationOrchestrator) generateWorkout(ctx context.Context, logger *zerolog.Logger, weekID int64, gc entities.GenerationContext) (string, error) {
	exists, err := o.workouts.ExistsForWeek(ctx, weekID)
	if err != nil {
		return outcomeError, err
	}
	if exists {
		logger.Info().Msg("workout already exists")
		return outcomeExisting, o.weeks.SetStatus(ctx, weekID, entities.PlanKindWorkout, entities.PlanStatusReady)
	}

	catalog, err := o.catalog.ListAll(ctx)
	if err != nil {
		return outcomeError, err
	}

	var (
		plan           entities.ResolvedPlan
		fallbackReason error
	)

	if len(catalog) == 0 {
		fallbackReason = errEmptyCatalog
	} else {
		raw, genErr := o.generator.Generate(ctx, planning.BuildWorkoutPrompt(gc, catalog), planning.WorkoutOptions)
		switch {
		case apperrors.IsType(genErr, apperrors.ErrorTypeConfiguration):
			return outcomeError, genErr
		case genErr != nil:
			fallbackReason = genErr
		default:
			resolved, missing := planning.ResolveByName(planning.ParseStructured(raw), catalog, true)
			if len(missing) > 0 {
				logger.Warn().Strs("missing", missing).Msg("generated exercises not found in catalog")
			}
			if len(resolved) == 0 {
				fallbackReason = apperrors.NewMalformedOutputError("generator output has no resolvable days")
			}
			plan = resolved
		}
	}

	outcome := outcomeGenerated
	if fallbackReason != nil {
		logger.Warn().Err(fallbackReason).Msg("using fallback workout")
		plan = planning.BuildFallbackPlan(catalog, gc.Profile.Level, gc.DaysPerWeek, gc.FocusMuscle)
		outcome = outcomeFallback
	}

	workout, err := o.persister.PersistWorkout(ctx, weekID, plan)
	if err != nil {
		return outcomeError, err
	}

	logger.Info().Int64("workout_id", workout.ID).Int("days", len(workout.Days)).Msg("workout stored")
	return outcome, nil
}

func (o *GenerationOrchestrator) generateDiet(ctx context.Context, logger *zerolog.Logger, weekID int64, gc entities.GenerationContext) (string, error) {
	exists, err := o.diets.ExistsForWeek(ctx, weekID)
	if err != nil {
		return outcomeError, err
	}
	if exists {
		logger.Info().Msg("diet already exists")
		return outcomeExisting, o.weeks.SetStatus(ctx, weekID, entities.PlanKindDiet, entities.PlanStatusReady)
	}

	var fallbackReason error
	raw, genErr := o.generator.Generate(ctx, planning.BuildDietPrompt(gc), planning.DietOptions)
	switch {
	case apperrors.IsType(genErr, apperrors.ErrorTypeConfiguration):
		return outcomeError, genErr
	case genErr != nil:
		fallbackReason = genErr
	case strings.TrimSpace(raw) == "":
		fallbackReason = apperrors.NewMalformedOutputError("generator returned a blank diet")
	}

	content := strings.TrimSpace(raw)
	outcome := outcomeGenerated
	if fallbackReason != nil {
		logger.Warn().Err(fallbackReason).Msg("using fallback diet")
		content = planning.BuildFallbackDiet(gc)
		outcome = outcomeFallback
	}

	diet := &entities.Diet{WeekID: weekID, Content: content}
	created, err := o.diets.CreateIfAbsent(ctx, diet)
	if err != nil {
		return outcomeError, err
	}
	if !created {
		logger.Info().Msg("diet written concurrently, keeping existing one")
		return outcomeExisting, nil
	}

	logger.Info().Int64("diet_id", diet.ID).Msg("diet stored")
	return outcome, nil
}

// writeStatus records a terminal status on a fresh deadline so an expired run can still report.
// Failures are logged only.
func (o *GenerationOrchestrator) writeStatus(ctx context.Context, logger *zerolog.Logger, weekID int64, kind entities.PlanKind, status entities.PlanStatus) {
	statusCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
	defer cancel()

	if err := o.weeks.SetStatus(statusCtx, weekID, kind, status); err != nil {
		logger.Error().Err(err).Str("status", string(status)).Msg("failed to write plan status")
	}
}
