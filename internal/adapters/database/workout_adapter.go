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

// WorkoutAdapter implements the WorkoutRepository interface
type WorkoutAdapter struct {
	client *postgres.Client
}

// NewWorkoutAdapter creates a new workout adapter
func NewWorkoutAdapter(client *postgres.Client) *WorkoutAdapter {
	return &WorkoutAdapter{client: client}
}

var _ repositories.WorkoutRepository = (*WorkoutAdapter)(nil)

type workoutExerciseRow struct {
	ID          int64         `db:"id"`
	DayID       int64         `db:"day_id"`
	ExerciseID  int64         `db:"exercise_id"`
	Sets        sql.NullInt64 `db:"sets"`
	Reps        string        `db:"reps"`
	Notes       string        `db:"notes"`
	Order       int           `db:"order"`
	Title       string        `db:"title"`
	MuscleGroup string        `db:"muscle_group"`
	Level       string        `db:"level"`
	VideoURL    string        `db:"video_url"`
	Equipment   string        `db:"equipment"`
}

// ExistsForWeek reports whether the week has a workout
func (a *WorkoutAdapter) ExistsForWeek(ctx context.Context, weekID int64) (bool, error) {
	return existsWhere(ctx, a.client.DB(), tableWorkouts, "week_id", weekID)
}

// GetByWeekID loads the workout of a week with its days and exercises in order
func (a *WorkoutAdapter) GetByWeekID(ctx context.Context, weekID int64) (*entities.Workout, error) {
	db := a.client.DB()

	query, args, err := dialect.From(tableWorkouts).Prepared(true).
		Select("id", "week_id", "content", "created_at").
		Where(goqu.C("week_id").Eq(weekID)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	workout := &entities.Workout{}
	err = db.GetContext(ctx, workout, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("workout for week %d not found", weekID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get workout", err)
	}

	query, args, err = dialect.From(tableWorkoutDays).Prepared(true).
		Select("id", "workout_id", "name", "order").
		Where(goqu.C("workout_id").Eq(workout.ID)).
		Order(goqu.I("order").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	if err := db.SelectContext(ctx, &workout.Days, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to get workout days", err)
	}

	query, args, err = dialect.From(goqu.T(tableWorkoutExercises).As("we")).Prepared(true).
		InnerJoin(goqu.T(tableWorkoutDays).As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("we.day_id")))).
		InnerJoin(goqu.T(tableExercises).As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("we.exercise_id")))).
		Select(
			goqu.I("we.id"), goqu.I("we.day_id"), goqu.I("we.exercise_id"), goqu.I("we.sets"),
			goqu.I("we.reps"), goqu.I("we.notes"), goqu.I("we.order"),
			goqu.I("e.title"), goqu.I("e.muscle_group"), goqu.I("e.level"),
			goqu.I("e.video_url"), goqu.I("e.equipment"),
		).
		Where(goqu.I("d.workout_id").Eq(workout.ID)).
		Order(goqu.I("we.order").Asc(), goqu.I("we.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var rows []workoutExerciseRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to get workout exercises", err)
	}

	dayIndex := make(map[int64]int, len(workout.Days))
	for i := range workout.Days {
		dayIndex[workout.Days[i].ID] = i
		workout.Days[i].Exercises = []entities.WorkoutExercise{}
	}
	for _, row := range rows {
		idx, ok := dayIndex[row.DayID]
		if !ok {
			continue
		}
		ex := entities.WorkoutExercise{
			ID:         row.ID,
			DayID:      row.DayID,
			ExerciseID: row.ExerciseID,
			Exercise: &entities.CatalogEntry{
				ID:          row.ExerciseID,
				Title:       row.Title,
				MuscleGroup: row.MuscleGroup,
				Level:       row.Level,
				VideoURL:    row.VideoURL,
				Equipment:   row.Equipment,
			},
			Reps:  row.Reps,
			Notes: row.Notes,
			Order: row.Order,
		}
		if row.Sets.Valid {
			sets := int(row.Sets.Int64)
			ex.Sets = &sets
		}
		workout.Days[idx].Exercises = append(workout.Days[idx].Exercises, ex)
	}

	return workout, nil
}

// ReplaceForWeek swaps the week workout for the given one. The week row is locked, the old
// workout deleted (days and exercises cascade), the new one inserted with its days and
// exercises and the workout status set to ready before commit.
func (a *WorkoutAdapter) ReplaceForWeek(ctx context.Context, workout *entities.Workout) error {
	return withTx(ctx, a.client, func(tx *sqlx.Tx) error {
		if err := lockWeek(ctx, tx, workout.WeekID); err != nil {
			return err
		}
		if err := deleteWorkout(ctx, tx, workout.WeekID); err != nil {
			return err
		}

		query, args, err := dialect.Insert(tableWorkouts).Prepared(true).
			Rows(goqu.Record{"week_id": workout.WeekID, "content": workout.Content}).
			Returning("id", "created_at").
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&workout.ID, &workout.CreatedAt); err != nil {
			return apperrors.NewPersistenceError("failed to create workout", err)
		}

		for i := range workout.Days {
			if err := insertDay(ctx, tx, workout.ID, &workout.Days[i]); err != nil {
				return err
			}
		}

		return setStatus(ctx, tx, workout.WeekID, entities.PlanKindWorkout, entities.PlanStatusReady)
	})
}

// ResetForWeek removes the week workout if any and sets the workout status to pending
// in the same transaction.
func (a *WorkoutAdapter) ResetForWeek(ctx context.Context, weekID int64) error {
	return withTx(ctx, a.client, func(tx *sqlx.Tx) error {
		if err := lockWeek(ctx, tx, weekID); err != nil {
			return err
		}
		if err := deleteWorkout(ctx, tx, weekID); err != nil {
			return err
		}
		return setStatus(ctx, tx, weekID, entities.PlanKindWorkout, entities.PlanStatusPending)
	})
}

func deleteWorkout(ctx context.Context, exec sqlx.ExecerContext, weekID int64) error {
	query, args, err := dialect.Delete(tableWorkouts).Prepared(true).
		Where(goqu.C("week_id").Eq(weekID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to delete workout", err)
	}
	return nil
}

func insertDay(ctx context.Context, tx *sqlx.Tx, workoutID int64, day *entities.WorkoutDay) error {
	day.WorkoutID = workoutID

	query, args, err := dialect.Insert(tableWorkoutDays).Prepared(true).
		Rows(goqu.Record{"workout_id": workoutID, "name": day.Name, "order": day.Order}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&day.ID); err != nil {
		return apperrors.NewPersistenceError("failed to create workout day", err)
	}

	if len(day.Exercises) == 0 {
		return nil
	}

	rows := make([]any, 0, len(day.Exercises))
	for i := range day.Exercises {
		ex := &day.Exercises[i]
		ex.DayID = day.ID
		rows = append(rows, goqu.Record{
			"day_id":      day.ID,
			"exercise_id": ex.ExerciseID,
			"sets":        nullableInt(ex.Sets),
			"reps":        ex.Reps,
			"notes":       ex.Notes,
			"order":       ex.Order,
		})
	}

	query, args, err = dialect.Insert(tableWorkoutExercises).Prepared(true).
		Rows(rows...).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to create workout exercises", err)
	}
	return nil
}
