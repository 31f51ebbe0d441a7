package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

func TestPlanPersister_PersistWorkout(t *testing.T) {
	catalog := testCatalog()
	plan := entities.ResolvedPlan{
		{Name: "Lunes", Order: 0, Exercises: []entities.ResolvedExercise{
			{Entry: &catalog[0], Sets: intPtr(4), Reps: "10-12", Notes: "Piernas", Order: 0},
			{Entry: &catalog[1], Reps: "8", Order: 1},
		}},
		{Name: "Jueves", Order: 3, Exercises: []entities.ResolvedExercise{
			{Entry: &catalog[2], Sets: intPtr(3), Order: 0},
		}},
	}

	t.Run("stores rendered content and structure", func(t *testing.T) {
		// Arrange
		repo := new(MockWorkoutRepository)
		persister := services.NewPlanPersister(repo)
		repo.On("ReplaceForWeek", mock.Anything, mock.AnythingOfType("*entities.Workout")).Return(nil)

		// Act
		workout, err := persister.PersistWorkout(context.Background(), 7, plan)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), workout.WeekID)
		assert.Equal(t, "Lunes:\n- Sentadilla | 4x10-12 - Piernas\n- Press de banca | 8\n\nJueves:\n- Remo con barra | 3x", workout.Content)
		require.Len(t, workout.Days, 2)
		assert.Equal(t, 3, workout.Days[1].Order)
		assert.Equal(t, int64(2), workout.Days[0].Exercises[1].ExerciseID)
		assert.Equal(t, 1, workout.Days[0].Exercises[1].Order)
		assert.Equal(t, 4, *workout.Days[0].Exercises[0].Sets)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty plan without writing", func(t *testing.T) {
		repo := new(MockWorkoutRepository)
		persister := services.NewPlanPersister(repo)

		workout, err := persister.PersistWorkout(context.Background(), 7, entities.ResolvedPlan{})

		assert.Nil(t, workout)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEmptyPlan))
		repo.AssertNotCalled(t, "ReplaceForWeek", mock.Anything, mock.Anything)
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		repo := new(MockWorkoutRepository)
		persister := services.NewPlanPersister(repo)
		repo.On("ReplaceForWeek", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		_, err := persister.PersistWorkout(context.Background(), 7, plan)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
	})

	t.Run("keeps not found from storage", func(t *testing.T) {
		repo := new(MockWorkoutRepository)
		persister := services.NewPlanPersister(repo)
		repo.On("ReplaceForWeek", mock.Anything, mock.Anything).Return(apperrors.NewNotFoundError("week with id 7 not found"))

		_, err := persister.PersistWorkout(context.Background(), 7, plan)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
