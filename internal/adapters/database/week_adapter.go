package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

// WeekAdapter implements the WeekRepository interface
type WeekAdapter struct {
	client *postgres.Client
}

// NewWeekAdapter creates a new week adapter
func NewWeekAdapter(client *postgres.Client) *WeekAdapter {
	return &WeekAdapter{client: client}
}

var _ repositories.WeekRepository = (*WeekAdapter)(nil)

// GetByID retrieves a week by ID
func (a *WeekAdapter) GetByID(ctx context.Context, id int64) (*entities.Week, error) {
	query, args, err := dialect.From(tableWeeks).Prepared(true).
		Select("id", "student_id", "start_date", "end_date", "is_active",
			"workout_status", "diet_status", "created_at").
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	week := &entities.Week{}
	err = a.client.DB().GetContext(ctx, week, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("week with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get week", err)
	}
	return week, nil
}

// SetStatus updates the status column of one plan kind, leaving every other column untouched
func (a *WeekAdapter) SetStatus(ctx context.Context, weekID int64, kind entities.PlanKind, status entities.PlanStatus) error {
	return setStatus(ctx, a.client.DB(), weekID, kind, status)
}
