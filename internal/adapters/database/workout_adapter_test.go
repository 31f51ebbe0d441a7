package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

func sampleWorkout() *entities.Workout {
	sets := 4
	return &entities.Workout{
		WeekID:  7,
		Content: "Lunes:\n- Sentadilla | 4x10-12",
		Days: []entities.WorkoutDay{
			{Name: "Lunes", Order: 0, Exercises: []entities.WorkoutExercise{
				{ExerciseID: 1, Sets: &sets, Reps: "10-12", Order: 0},
				{ExerciseID: 2, Reps: "8", Order: 1},
			}},
			{Name: "Miercoles", Order: 2, Exercises: []entities.WorkoutExercise{
				{ExerciseID: 3, Order: 0},
			}},
		},
	}
}

func expectWeekLock(mock sqlmock.Sqlmock, weekID int64) {
	mock.ExpectQuery(q(`SELECT "id" FROM "weeks" WHERE ("id" = $1) FOR UPDATE`)).
		WithArgs(weekID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(weekID))
}

func TestWorkoutAdapter_ReplaceForWeek(t *testing.T) {
	client, mock := setupMockClient(t)
	now := time.Now()

	mock.ExpectBegin()
	expectWeekLock(mock, 7)
	mock.ExpectExec(q(`DELETE FROM "workouts" WHERE ("week_id" = $1)`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(`INSERT INTO "workouts"`) + ".*" + q(`RETURNING "id", "created_at"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
	mock.ExpectQuery(q(`INSERT INTO "workout_days"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(q(`INSERT INTO "workout_exercises"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(q(`INSERT INTO "workout_days"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
	mock.ExpectExec(q(`INSERT INTO "workout_exercises"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`UPDATE "weeks" SET "workout_status"=$1 WHERE ("id" = $2)`)).
		WithArgs("ready", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	workout := sampleWorkout()
	err := NewWorkoutAdapter(client).ReplaceForWeek(context.Background(), workout)

	require.NoError(t, err)
	assert.Equal(t, int64(11), workout.ID)
	assert.Equal(t, int64(21), workout.Days[0].ID)
	assert.Equal(t, int64(21), workout.Days[0].Exercises[1].DayID)
	assert.Equal(t, int64(22), workout.Days[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_ReplaceForWeek_RollsBack(t *testing.T) {
	client, mock := setupMockClient(t)

	mock.ExpectBegin()
	expectWeekLock(mock, 7)
	mock.ExpectExec(q(`DELETE FROM "workouts"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q(`INSERT INTO "workouts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, time.Now()))
	mock.ExpectQuery(q(`INSERT INTO "workout_days"`)).
		WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	err := NewWorkoutAdapter(client).ReplaceForWeek(context.Background(), sampleWorkout())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_ReplaceForWeek_UnknownWeek(t *testing.T) {
	client, mock := setupMockClient(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`FOR UPDATE`)).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := NewWorkoutAdapter(client).ReplaceForWeek(context.Background(), sampleWorkout())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_ResetForWeek(t *testing.T) {
	client, mock := setupMockClient(t)

	mock.ExpectBegin()
	expectWeekLock(mock, 7)
	mock.ExpectExec(q(`DELETE FROM "workouts" WHERE ("week_id" = $1)`)).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`UPDATE "weeks" SET "workout_status"=$1 WHERE ("id" = $2)`)).
		WithArgs("pending", int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewWorkoutAdapter(client).ResetForWeek(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_ResetForWeek_StatusFailureKeepsWorkout(t *testing.T) {
	client, mock := setupMockClient(t)

	mock.ExpectBegin()
	expectWeekLock(mock, 7)
	mock.ExpectExec(q(`DELETE FROM "workouts"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q(`UPDATE "weeks" SET "workout_status"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewWorkoutAdapter(client).ResetForWeek(context.Background(), 7)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_ExistsForWeek(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewWorkoutAdapter(client)

	mock.ExpectQuery(q(`SELECT 1 FROM "workouts" WHERE ("week_id" = $1) LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(q(`FROM "workouts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := adapter.ExistsForWeek(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = adapter.ExistsForWeek(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutAdapter_GetByWeekID(t *testing.T) {
	client, mock := setupMockClient(t)
	now := time.Now()

	mock.ExpectQuery(q(`FROM "workouts" WHERE ("week_id" = $1)`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "week_id", "content", "created_at"}).
			AddRow(11, 7, "Lunes:\n- Sentadilla", now))
	mock.ExpectQuery(q(`FROM "workout_days" WHERE ("workout_id" = $1)`)).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workout_id", "name", "order"}).
			AddRow(21, 11, "Lunes", 0).
			AddRow(22, 11, "Jueves", 3))
	mock.ExpectQuery(q(`FROM "workout_exercises" AS "we" INNER JOIN "workout_days" AS "d"`)).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "day_id", "exercise_id", "sets", "reps", "notes", "order", "title", "muscle_group", "level", "video_url", "equipment"}).
			AddRow(31, 21, 1, 4, "10-12", "", 0, "Sentadilla", "Piernas", "", "", "").
			AddRow(32, 22, 2, nil, "8", "lento", 0, "Remo", "Espalda", "", "", ""))

	workout, err := NewWorkoutAdapter(client).GetByWeekID(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, workout.Days, 2)
	assert.Equal(t, 3, workout.Days[1].Order)
	require.Len(t, workout.Days[0].Exercises, 1)
	assert.Equal(t, 4, *workout.Days[0].Exercises[0].Sets)
	assert.Equal(t, "Sentadilla", workout.Days[0].Exercises[0].Exercise.Title)
	assert.Nil(t, workout.Days[1].Exercises[0].Sets)
	assert.Equal(t, "lento", workout.Days[1].Exercises[0].Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}
