package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
)

type manualFixture struct {
	weeks    *MockWeekRepository
	catalog  *MockCatalogRepository
	workouts *MockWorkoutRepository
	diets    *MockDietRepository
	service  *services.ManualPlanService
}

func newManualFixture() *manualFixture {
	f := &manualFixture{
		weeks:    new(MockWeekRepository),
		catalog:  new(MockCatalogRepository),
		workouts: new(MockWorkoutRepository),
		diets:    new(MockDietRepository),
	}
	f.service = services.NewManualPlanService(f.weeks, f.catalog, f.workouts, f.diets)
	f.weeks.On("GetByID", mock.Anything, weekID).Return(&entities.Week{ID: weekID}, nil)
	return f
}

func TestManualPlanService_SubmitWorkout_ByID(t *testing.T) {
	t.Run("missing ids reject the submission", func(t *testing.T) {
		f := newManualFixture()
		catalog := testCatalog()
		f.catalog.On("GetByIDs", mock.Anything, []int64{1, 2, 999}).
			Return(map[int64]*entities.CatalogEntry{1: &catalog[0], 2: &catalog[1]}, nil)

		_, err := f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{
			Plan: []planning.ManualDay{{Day: "Lunes", Exercises: []planning.ManualExercise{
				{ExerciseID: float64(1)}, {ExerciseID: float64(2)}, {ExerciseID: float64(999)},
			}}},
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "999")
		f.workouts.AssertNotCalled(t, "ReplaceForWeek", mock.Anything, mock.Anything)
	})

	t.Run("resolved plan is stored", func(t *testing.T) {
		f := newManualFixture()
		catalog := testCatalog()
		reps := "12"
		f.catalog.On("GetByIDs", mock.Anything, []int64{3}).
			Return(map[int64]*entities.CatalogEntry{3: &catalog[2]}, nil)
		f.workouts.On("ReplaceForWeek", mock.Anything, mock.AnythingOfType("*entities.Workout")).Return(nil)

		workout, err := f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{
			Plan: []planning.ManualDay{{Day: "Viernes", Exercises: []planning.ManualExercise{
				{ExerciseID: "3", Sets: float64(4), Reps: &reps},
			}}},
		})

		require.NoError(t, err)
		assert.Equal(t, "Viernes:\n- Remo con barra | 4x12", workout.Content)
	})
}

func TestManualPlanService_SubmitWorkout_Text(t *testing.T) {
	t.Run("missing names are sorted", func(t *testing.T) {
		f := newManualFixture()
		f.catalog.On("ListAll", mock.Anything).Return(testCatalog(), nil)

		_, err := f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{
			Content: "Lunes:\n- Zancadas | 10\n- Sentadilla | 12\n- Burpees",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "Burpees, Zancadas")
	})

	t.Run("text plan is stored", func(t *testing.T) {
		f := newManualFixture()
		f.catalog.On("ListAll", mock.Anything).Return(testCatalog(), nil)
		f.workouts.On("ReplaceForWeek", mock.Anything, mock.Anything).Return(nil)

		workout, err := f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{
			Content: "Lunes:\n- sentadilla | 4x10\n\nMartes:\n- PRESS DE BANCA",
		})

		require.NoError(t, err)
		assert.Equal(t, "Lunes:\n- Sentadilla | 4x10\n\nMartes:\n- Press de banca", workout.Content)
	})
}

func TestManualPlanService_SubmitWorkout_Invalid(t *testing.T) {
	f := newManualFixture()

	_, err := f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{Content: "  "})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = f.service.SubmitWorkout(context.Background(), weekID, services.ManualWorkoutInput{
		Plan: []planning.ManualDay{{Day: "Lunes", Exercises: []planning.ManualExercise{{ExerciseID: "abc"}}}},
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	f.catalog.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestManualPlanService_SubmitDiet(t *testing.T) {
	f := newManualFixture()
	f.diets.On("ReplaceForWeek", mock.Anything, mock.MatchedBy(func(d *entities.Diet) bool {
		return d.WeekID == weekID && d.Content == "Lunes: avena"
	})).Return(nil)

	diet, err := f.service.SubmitDiet(context.Background(), weekID, " Lunes: avena ")
	require.NoError(t, err)
	assert.Equal(t, "Lunes: avena", diet.Content)

	_, err = f.service.SubmitDiet(context.Background(), weekID, "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	f.diets.AssertExpectations(t)
}
