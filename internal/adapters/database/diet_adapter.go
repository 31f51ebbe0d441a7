package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/repositories"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

// DietAdapter implements the DietRepository interface
type DietAdapter struct {
	client *postgres.Client
}

// NewDietAdapter creates a new diet adapter
func NewDietAdapter(client *postgres.Client) *DietAdapter {
	return &DietAdapter{client: client}
}

var _ repositories.DietRepository = (*DietAdapter)(nil)

// ExistsForWeek reports whether the week has a diet
func (a *DietAdapter) ExistsForWeek(ctx context.Context, weekID int64) (bool, error) {
	return existsWhere(ctx, a.client.DB(), tableDiets, "week_id", weekID)
}

// GetByWeekID retrieves the diet of a week
func (a *DietAdapter) GetByWeekID(ctx context.Context, weekID int64) (*entities.Diet, error) {
	query, args, err := dialect.From(tableDiets).Prepared(true).
		Select("id", "week_id", "content", "created_at").
		Where(goqu.C("week_id").Eq(weekID)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	diet := &entities.Diet{}
	err = a.client.DB().GetContext(ctx, diet, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("diet for week %d not found", weekID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get diet", err)
	}
	return diet, nil
}

// CreateIfAbsent inserts the diet unless the week already has one, then marks the diet ready.
// A concurrent writer that committed first wins and the call reports false.
func (a *DietAdapter) CreateIfAbsent(ctx context.Context, diet *entities.Diet) (bool, error) {
	created := false
	err := withTx(ctx, a.client, func(tx *sqlx.Tx) error {
		query, args, err := dialect.Insert(tableDiets).Prepared(true).
			Rows(goqu.Record{"week_id": diet.WeekID, "content": diet.Content}).
			OnConflict(goqu.DoNothing()).
			Returning("id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}

		err = tx.QueryRowxContext(ctx, query, args...).Scan(&diet.ID, &diet.CreatedAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return apperrors.NewPersistenceError("failed to create diet", err)
		default:
			created = true
		}

		return setStatus(ctx, tx, diet.WeekID, entities.PlanKindDiet, entities.PlanStatusReady)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// ReplaceForWeek swaps the week diet for the given one and marks the diet ready
func (a *DietAdapter) ReplaceForWeek(ctx context.Context, diet *entities.Diet) error {
	return withTx(ctx, a.client, func(tx *sqlx.Tx) error {
		if err := lockWeek(ctx, tx, diet.WeekID); err != nil {
			return err
		}

		query, args, err := dialect.Delete(tableDiets).Prepared(true).
			Where(goqu.C("week_id").Eq(diet.WeekID)).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build delete query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewPersistenceError("failed to delete diet", err)
		}

		query, args, err = dialect.Insert(tableDiets).Prepared(true).
			Rows(goqu.Record{"week_id": diet.WeekID, "content": diet.Content}).
			Returning("id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&diet.ID, &diet.CreatedAt); err != nil {
			return apperrors.NewPersistenceError("failed to create diet", err)
		}

		return setStatus(ctx, tx, diet.WeekID, entities.PlanKindDiet, entities.PlanStatusReady)
	})
}
