package repositories

import (
	"context"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// WeekRepository defines the week operations the planning core needs.
type WeekRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Week, error)

	// SetStatus updates only the status column of the given kind
	SetStatus(ctx context.Context, weekID int64, kind entities.PlanKind, status entities.PlanStatus) error
}
