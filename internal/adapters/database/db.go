package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

const (
	tableExercises        = "exercises"
	tableWeeks            = "weeks"
	tableWorkouts         = "workouts"
	tableWorkoutDays      = "workout_days"
	tableWorkoutExercises = "workout_exercises"
	tableDiets            = "diets"
)

var dialect = goqu.Dialect("postgres")

// withTx runs fn inside a transaction. The transaction is rolled back when fn fails;
// a failed rollback is logged and the original error returned.
func withTx(ctx context.Context, client *postgres.Client, fn func(tx *sqlx.Tx) error) error {
	tx, err := client.BeginTxx(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			observability.LoggerFromContext(ctx).Warn().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewPersistenceError("failed to commit transaction", err)
	}
	return nil
}

// lockWeek takes a row lock on the week for the rest of the transaction.
func lockWeek(ctx context.Context, tx *sqlx.Tx, weekID int64) error {
	query, args, err := dialect.From(tableWeeks).Prepared(true).
		Select("id").
		Where(goqu.C("id").Eq(weekID)).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build week lock query", err)
	}

	var id int64
	err = tx.QueryRowxContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("week with id %d not found", weekID))
	}
	if err != nil {
		return apperrors.NewPersistenceError("failed to lock week", err)
	}
	return nil
}

// setStatus updates one status column of a week. Zero affected rows is reported as not found.
func setStatus(ctx context.Context, exec sqlx.ExecerContext, weekID int64, kind entities.PlanKind, status entities.PlanStatus) error {
	column, err := kind.StatusColumn()
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	query, args, err := dialect.Update(tableWeeks).Prepared(true).
		Set(goqu.Record{column: string(status)}).
		Where(goqu.C("id").Eq(weekID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status update", err)
	}

	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to set %s", column), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("week with id %d not found", weekID))
	}
	return nil
}

// existsWhere reports whether table has a row with column = value.
func existsWhere(ctx context.Context, db *sqlx.DB, table, column string, value any) (bool, error) {
	query, args, err := dialect.From(table).Prepared(true).
		Select(goqu.L("1")).
		Where(goqu.C(column).Eq(value)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build exists query", err)
	}

	var one int
	err = db.QueryRowxContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError(fmt.Sprintf("failed to check %s", table), err)
	}
	return true, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
