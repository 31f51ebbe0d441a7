package services

import (
	"context"
	"fmt"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

// PlanPersister stores resolved workout plans as the single workout of a week
type PlanPersister struct {
	workouts repositories.WorkoutRepository
}

// NewPlanPersister creates a new plan persister
func NewPlanPersister(workouts repositories.WorkoutRepository) *PlanPersister {
	return &PlanPersister{workouts: workouts}
}

// PersistWorkout replaces the workout of the week with plan and marks the workout ready.
// A plan without days is rejected before any write.
func (p *PlanPersister) PersistWorkout(ctx context.Context, weekID int64, plan entities.ResolvedPlan) (*entities.Workout, error) {
	if len(plan) == 0 {
		return nil, apperrors.NewEmptyPlanError(fmt.Sprintf("workout plan for week %d has no days", weekID))
	}

	workout := &entities.Workout{
		WeekID:  weekID,
		Content: planning.RenderWorkout(plan),
		Days:    make([]entities.WorkoutDay, 0, len(plan)),
	}

	for _, day := range plan {
		wd := entities.WorkoutDay{
			Name:      day.Name,
			Order:     day.Order,
			Exercises: make([]entities.WorkoutExercise, 0, len(day.Exercises)),
		}
		for _, item := range day.Exercises {
			if item.Entry == nil {
				continue
			}
			var sets *int
			if item.Sets != nil {
				v := *item.Sets
				sets = &v
			}
			wd.Exercises = append(wd.Exercises, entities.WorkoutExercise{
				ExerciseID: item.Entry.ID,
				Exercise:   item.Entry,
				Sets:       sets,
				Reps:       item.Reps,
				Notes:      item.Notes,
				Order:      item.Order,
			})
		}
		workout.Days = append(workout.Days, wd)
	}

	if err := p.workouts.ReplaceForWeek(ctx, workout); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypePersistence) || apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, apperrors.NewPersistenceError("failed to persist workout", err)
	}

	return workout, nil
}
