package repositories

import (
	"context"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// DietRepository defines persistence for week diets.
type DietRepository interface {
	ExistsForWeek(ctx context.Context, weekID int64) (bool, error)
	GetByWeekID(ctx context.Context, weekID int64) (*entities.Diet, error)

	// CreateIfAbsent stores the diet unless the week already has one and marks the diet
	// status ready. It reports whether a new record was written.
	CreateIfAbsent(ctx context.Context, diet *entities.Diet) (bool, error)

	// ReplaceForWeek swaps the week diet for the given one and marks the status ready.
	ReplaceForWeek(ctx context.Context, diet *entities.Diet) error
}
