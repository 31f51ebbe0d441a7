package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

// ManualWorkoutInput is a coach authored workout. Plan references catalog entries by ID;
// Content is the legacy text format and is only used when Plan is empty.
type ManualWorkoutInput struct {
	Plan    []planning.ManualDay `json:"plan"`
	Content string               `json:"content"`
}

// ManualPlanService stores coach authored plans. Every catalog reference must resolve,
// otherwise nothing is written.
type ManualPlanService struct {
	weeks     repositories.WeekRepository
	catalog   repositories.CatalogRepository
	diets     repositories.DietRepository
	persister *PlanPersister
}

// NewManualPlanService creates a new manual plan service
func NewManualPlanService(weeks repositories.WeekRepository, catalog repositories.CatalogRepository, workouts repositories.WorkoutRepository, diets repositories.DietRepository) *ManualPlanService {
	return &ManualPlanService{
		weeks:     weeks,
		catalog:   catalog,
		diets:     diets,
		persister: NewPlanPersister(workouts),
	}
}

// SubmitWorkout resolves and stores a manual workout, replacing the current one
func (s *ManualPlanService) SubmitWorkout(ctx context.Context, weekID int64, in ManualWorkoutInput) (*entities.Workout, error) {
	if _, err := s.weeks.GetByID(ctx, weekID); err != nil {
		return nil, err
	}

	var resolved entities.ResolvedPlan
	switch {
	case len(in.Plan) > 0:
		plan, missing, err := planning.ResolveByID(ctx, planning.FromManual(in.Plan), s.catalog, false)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, apperrors.NewValidationError("exercises not found in catalog: " + joinIDs(missing))
		}
		resolved = plan

	case strings.TrimSpace(in.Content) != "":
		catalog, err := s.catalog.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		plan, missing := planning.ResolveByName(planning.ParseText(in.Content), catalog, false)
		if len(missing) > 0 {
			sorted := append([]string(nil), missing...)
			sort.Strings(sorted)
			return nil, apperrors.NewValidationError("exercises not in catalog: " + strings.Join(sorted, ", "))
		}
		resolved = plan

	default:
		return nil, apperrors.NewValidationError("a structured plan with catalog exercises is required")
	}

	if len(resolved) == 0 {
		return nil, apperrors.NewValidationError("plan has no valid exercises")
	}

	return s.persister.PersistWorkout(ctx, weekID, resolved)
}

// SubmitDiet stores a manual diet, replacing the current one
func (s *ManualPlanService) SubmitDiet(ctx context.Context, weekID int64, content string) (*entities.Diet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("diet content is required")
	}
	if _, err := s.weeks.GetByID(ctx, weekID); err != nil {
		return nil, err
	}

	diet := &entities.Diet{WeekID: weekID, Content: content}
	if err := s.diets.ReplaceForWeek(ctx, diet); err != nil {
		return nil, fmt.Errorf("failed to store diet: %w", err)
	}
	return diet, nil
}

func joinIDs(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
