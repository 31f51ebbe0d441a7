package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

func TestWeekAdapter_GetByID(t *testing.T) {
	client, mock := setupMockClient(t)
	now := time.Now()

	mock.ExpectQuery(q(`FROM "weeks" WHERE ("id" = $1)`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "start_date", "end_date", "is_active", "workout_status", "diet_status", "created_at"}).
			AddRow(7, 3, now, now.AddDate(0, 0, 7), true, "generating", "ready", now))

	week, err := NewWeekAdapter(client).GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(3), week.StudentID)
	assert.Equal(t, entities.PlanStatusGenerating, week.Status(entities.PlanKindWorkout))
	assert.Equal(t, entities.PlanStatusReady, week.Status(entities.PlanKindDiet))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	mock.ExpectQuery(q(`FROM "weeks"`)).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewWeekAdapter(client).GetByID(context.Background(), 8)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestWeekAdapter_SetStatus_SingleColumn(t *testing.T) {
	client, mock := setupMockClient(t)

	mock.ExpectExec(q(`UPDATE "weeks" SET "diet_status"=$1 WHERE ("id" = $2)`)).
		WithArgs("generating", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewWeekAdapter(client).SetStatus(context.Background(), 7, entities.PlanKindDiet, entities.PlanStatusGenerating)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeekAdapter_SetStatus_Errors(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewWeekAdapter(client)

	mock.ExpectExec(q(`UPDATE "weeks" SET "workout_status"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := adapter.SetStatus(context.Background(), 99, entities.PlanKindWorkout, entities.PlanStatusError)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	err = adapter.SetStatus(context.Background(), 1, entities.PlanKind("nutrition"), entities.PlanStatusError)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	require.NoError(t, mock.ExpectationsWereMet())
}
