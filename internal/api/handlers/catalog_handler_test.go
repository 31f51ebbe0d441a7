package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/api/handlers"
	"github.com/zatekoja/coachplan/internal/domain/entities"
)

type MockCatalogLister struct {
	mock.Mock
}

func (m *MockCatalogLister) ListAll(ctx context.Context) ([]entities.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CatalogEntry), args.Error(1)
}

func TestCatalogHandler_ListCatalog(t *testing.T) {
	entries := []entities.CatalogEntry{
		{ID: 1, Title: "Sentadilla", MuscleGroup: "Piernas", Level: "principiante"},
		{ID: 2, Title: "Sentadilla búlgara", MuscleGroup: "Piernas y glúteos", Level: "intermedio"},
		{ID: 3, Title: "Remo con barra", MuscleGroup: "Espalda", Level: "intermedio"},
	}

	testCases := []struct {
		name     string
		query    string
		expected int
	}{
		{"all", "", 3},
		{"muscle group substring", "?muscle_group=piernas", 2},
		{"level exact", "?level=intermedio", 2},
		{"title search", "?q=SENTADILLA&level=principiante", 1},
		{"no match", "?q=press", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lister := new(MockCatalogLister)
			lister.On("ListAll", mock.Anything).Return(entries, nil)
			w := httptest.NewRecorder()

			handlers.NewCatalogHandler(lister).ListCatalog(w, httptest.NewRequest(http.MethodGet, "/api/catalog"+tc.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, float64(tc.expected), decodeBody(t, w)["count"])
		})
	}
}

func TestCatalogHandler_ListCatalogError(t *testing.T) {
	lister := new(MockCatalogLister)
	lister.On("ListAll", mock.Anything).Return(nil, errors.New("redis: connection refused"))
	w := httptest.NewRecorder()

	handlers.NewCatalogHandler(lister).ListCatalog(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
