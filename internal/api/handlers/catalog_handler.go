package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// CatalogLister lists the exercise catalog
type CatalogLister interface {
	ListAll(ctx context.Context) ([]entities.CatalogEntry, error)
}

// CatalogHandler serves the exercise catalog
type CatalogHandler struct {
	catalog CatalogLister
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogLister) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCatalog handles GET /api/catalog with optional muscle_group, level and q filters
func (h *CatalogHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.ListAll(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	query := r.URL.Query()
	muscleGroup := strings.ToLower(strings.TrimSpace(query.Get("muscle_group")))
	level := strings.TrimSpace(query.Get("level"))
	search := strings.ToLower(strings.TrimSpace(query.Get("q")))

	filtered := make([]entities.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if muscleGroup != "" && !strings.Contains(strings.ToLower(entry.MuscleGroup), muscleGroup) {
			continue
		}
		if level != "" && entry.Level != level {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(entry.Title), search) {
			continue
		}
		filtered = append(filtered, entry)
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"exercises": filtered,
		"count":     len(filtered),
	})
}
