package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/zatekoja/coachplan/internal/adapters/database/schema"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
	"github.com/zatekoja/coachplan/pkg/utils"
)

// ApplySchema creates the plan tables when they are missing
func ApplySchema(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, schema.Plans); err != nil {
		return apperrors.NewPersistenceError("failed to apply schema", err)
	}
	return nil
}

// InsertMissing inserts the entries whose normalized title is not yet in the catalog and
// returns how many were inserted. Duplicates within entries are inserted once.
func (a *CatalogAdapter) InsertMissing(ctx context.Context, entries []entities.CatalogEntry) (int, error) {
	existing, err := a.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		known[utils.NormalizeName(entry.Title)] = struct{}{}
	}

	rows := make([]any, 0, len(entries))
	for _, entry := range entries {
		key := utils.NormalizeName(entry.Title)
		if key == "" {
			continue
		}
		if _, ok := known[key]; ok {
			continue
		}
		known[key] = struct{}{}
		rows = append(rows, goqu.Record{
			"title":        entry.Title,
			"muscle_group": entry.MuscleGroup,
			"level":        entry.Level,
			"video_url":    entry.VideoURL,
			"equipment":    entry.Equipment,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	query, args, err := dialect.Insert(tableExercises).Prepared(true).Rows(rows...).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return 0, apperrors.NewPersistenceError("failed to insert catalog entries", err)
	}
	return len(rows), nil
}

// Create inserts a new active week for the student. Any previously active week of the
// student is deactivated in the same transaction.
func (a *WeekAdapter) Create(ctx context.Context, week *entities.Week) error {
	if !week.EndDate.After(week.StartDate) {
		return apperrors.NewValidationError("week end date must be after its start date")
	}

	return withTx(ctx, a.client, func(tx *sqlx.Tx) error {
		query, args, err := dialect.Update(tableWeeks).Prepared(true).
			Set(goqu.Record{"is_active": false}).
			Where(goqu.C("student_id").Eq(week.StudentID), goqu.C("is_active").IsTrue()).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build deactivate query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewPersistenceError("failed to deactivate previous week", err)
		}

		query, args, err = dialect.Insert(tableWeeks).Prepared(true).
			Rows(goqu.Record{
				"student_id":     week.StudentID,
				"start_date":     week.StartDate,
				"end_date":       week.EndDate,
				"is_active":      true,
				"workout_status": string(entities.PlanStatusPending),
				"diet_status":    string(entities.PlanStatusPending),
			}).
			Returning("id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&week.ID, &week.CreatedAt); err != nil {
			return apperrors.NewPersistenceError(fmt.Sprintf("failed to create week for student %d", week.StudentID), err)
		}

		week.IsActive = true
		week.WorkoutStatus = entities.PlanStatusPending
		week.DietStatus = entities.PlanStatusPending
		return nil
	})
}
