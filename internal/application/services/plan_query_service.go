package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

// WeekPlanView is the status of a week together with the plans stored for it
type WeekPlanView struct {
	Week    *entities.Week    `json:"week"`
	Workout *entities.Workout `json:"workout"`
	Diet    *entities.Diet    `json:"diet"`
}

// PlanQueryService reads week plans for the status view
type PlanQueryService struct {
	weeks    repositories.WeekRepository
	workouts repositories.WorkoutRepository
	diets    repositories.DietRepository
}

// NewPlanQueryService creates a new plan query service
func NewPlanQueryService(weeks repositories.WeekRepository, workouts repositories.WorkoutRepository, diets repositories.DietRepository) *PlanQueryService {
	return &PlanQueryService{weeks: weeks, workouts: workouts, diets: diets}
}

// WeekStatus loads the week with its workout and diet. A stored plan whose status is not
// ready, and no run is generating it, is marked ready.
func (s *PlanQueryService) WeekStatus(ctx context.Context, weekID int64) (*WeekPlanView, error) {
	week, err := s.weeks.GetByID(ctx, weekID)
	if err != nil {
		return nil, err
	}

	view := &WeekPlanView{Week: week}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		workout, err := s.workouts.GetByWeekID(gctx, weekID)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		view.Workout = workout
		return nil
	})
	g.Go(func() error {
		diet, err := s.diets.GetByWeekID(gctx, weekID)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		view.Diet = diet
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.syncStatus(ctx, week, entities.PlanKindWorkout, view.Workout != nil)
	s.syncStatus(ctx, week, entities.PlanKindDiet, view.Diet != nil)

	return view, nil
}

func (s *PlanQueryService) syncStatus(ctx context.Context, week *entities.Week, kind entities.PlanKind, stored bool) {
	current := week.Status(kind)
	if !stored || current == entities.PlanStatusReady || current == entities.PlanStatusGenerating {
		return
	}

	if err := s.weeks.SetStatus(ctx, week.ID, kind, entities.PlanStatusReady); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Int64("week_id", week.ID).
			Str("kind", string(kind)).
			Msg("failed to sync plan status")
		return
	}

	if kind == entities.PlanKindDiet {
		week.DietStatus = entities.PlanStatusReady
	} else {
		week.WorkoutStatus = entities.PlanStatusReady
	}
}
