package repositories

import (
	"context"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// WorkoutRepository defines persistence for week workouts.
type WorkoutRepository interface {
	ExistsForWeek(ctx context.Context, weekID int64) (bool, error)
	GetByWeekID(ctx context.Context, weekID int64) (*entities.Workout, error)

	// ReplaceForWeek deletes any workout of the week and stores the given one with its days
	// and exercises, marking the week workout status ready, all in one transaction.
	ReplaceForWeek(ctx context.Context, workout *entities.Workout) error

	// ResetForWeek deletes any workout of the week and sets its workout status to pending
	// atomically.
	ResetForWeek(ctx context.Context, weekID int64) error
}
