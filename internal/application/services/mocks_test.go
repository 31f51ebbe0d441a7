package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
)

type MockWeekRepository struct {
	mock.Mock
}

func (m *MockWeekRepository) GetByID(ctx context.Context, id int64) (*entities.Week, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Week), args.Error(1)
}

func (m *MockWeekRepository) SetStatus(ctx context.Context, weekID int64, kind entities.PlanKind, status entities.PlanStatus) error {
	args := m.Called(ctx, weekID, kind, status)
	return args.Error(0)
}

type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) ExistsForWeek(ctx context.Context, weekID int64) (bool, error) {
	args := m.Called(ctx, weekID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkoutRepository) GetByWeekID(ctx context.Context, weekID int64) (*entities.Workout, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) ReplaceForWeek(ctx context.Context, workout *entities.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *MockWorkoutRepository) ResetForWeek(ctx context.Context, weekID int64) error {
	args := m.Called(ctx, weekID)
	return args.Error(0)
}

type MockDietRepository struct {
	mock.Mock
}

func (m *MockDietRepository) ExistsForWeek(ctx context.Context, weekID int64) (bool, error) {
	args := m.Called(ctx, weekID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDietRepository) GetByWeekID(ctx context.Context, weekID int64) (*entities.Diet, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Diet), args.Error(1)
}

func (m *MockDietRepository) CreateIfAbsent(ctx context.Context, diet *entities.Diet) (bool, error) {
	args := m.Called(ctx, diet)
	return args.Bool(0), args.Error(1)
}

func (m *MockDietRepository) ReplaceForWeek(ctx context.Context, diet *entities.Diet) error {
	args := m.Called(ctx, diet)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListAll(ctx context.Context) ([]entities.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entities.CatalogEntry), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, opts providers.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// inlineSubmitter runs jobs on the calling goroutine.
type inlineSubmitter struct {
	submitted int
}

func (s *inlineSubmitter) Submit(job services.Job) error {
	s.submitted++
	job()
	return nil
}

type rejectingSubmitter struct{}

func (rejectingSubmitter) Submit(services.Job) error {
	return services.ErrQueueFull
}

func testCatalog() []entities.CatalogEntry {
	return []entities.CatalogEntry{
		{ID: 1, Title: "Sentadilla", MuscleGroup: "Piernas", Level: "principiante"},
		{ID: 2, Title: "Press de banca", MuscleGroup: "Pecho", Level: "intermedio"},
		{ID: 3, Title: "Remo con barra", MuscleGroup: "Espalda", Level: "intermedio"},
		{ID: 4, Title: "Curl de bíceps", MuscleGroup: "Brazos", Level: "principiante"},
		{ID: 5, Title: "Elevación de talones", MuscleGroup: "Piernas", Level: "principiante"},
	}
}

func intPtr(v int) *int { return &v }
