package planning

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/pkg/utils"
)

// CatalogLookup fetches catalog entries by ID.
type CatalogLookup interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.CatalogEntry, error)
}

// ResolveByName matches every exercise name of the plan against the catalog titles using
// normalized equality. Unmatched names are returned once each, in first-seen order, and
// are never part of the resolved plan. ignoreMissing does not change the output; it is
// kept so callers state whether they will treat missing names as fatal.
func ResolveByName(plan entities.UnresolvedPlan, catalog []entities.CatalogEntry, ignoreMissing bool) (entities.ResolvedPlan, []string) {
	byTitle := make(map[string]*entities.CatalogEntry, len(catalog))
	for i := range catalog {
		key := utils.NormalizeName(catalog[i].Title)
		if key == "" {
			continue
		}
		byTitle[key] = &catalog[i]
	}

	missing := newOrderedSet[string]()
	resolved := entities.ResolvedPlan{}

	for dayIdx, day := range plan {
		exercises := make([]entities.ResolvedExercise, 0, len(day.Exercises))
		for _, item := range day.Exercises {
			name := strings.TrimSpace(item.Name)
			entry, ok := byTitle[utils.NormalizeName(name)]
			if !ok {
				missing.add(name)
				continue
			}
			exercises = append(exercises, resolvedFrom(item, entry, len(exercises)))
		}
		if len(exercises) > 0 {
			resolved = append(resolved, entities.ResolvedDay{
				Name:      dayName(day.Name, dayIdx),
				Order:     dayIdx,
				Exercises: exercises,
			})
		}
	}

	return resolved, missing.items
}

// ResolveByID resolves a plan whose references carry catalog IDs. Only the referenced IDs
// are fetched. References without an ID are skipped and not reported as missing.
func ResolveByID(ctx context.Context, plan entities.UnresolvedPlan, lookup CatalogLookup, ignoreMissing bool) (entities.ResolvedPlan, []int64, error) {
	if len(plan) == 0 {
		return entities.ResolvedPlan{}, nil, nil
	}

	seen := make(map[int64]struct{})
	for _, day := range plan {
		for _, item := range day.Exercises {
			if id, ok := refID(item); ok {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := map[int64]*entities.CatalogEntry{}
	if len(ids) > 0 {
		fetched, err := lookup.GetByIDs(ctx, ids)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch catalog entries: %w", err)
		}
		entries = fetched
	}

	missing := newOrderedSet[int64]()
	resolved := entities.ResolvedPlan{}

	for dayIdx, day := range plan {
		exercises := make([]entities.ResolvedExercise, 0, len(day.Exercises))
		for _, item := range day.Exercises {
			id, ok := refID(item)
			if !ok {
				continue
			}
			entry, found := entries[id]
			if !found || entry == nil {
				missing.add(id)
				continue
			}
			exercises = append(exercises, resolvedFrom(item, entry, len(exercises)))
		}
		if len(exercises) > 0 {
			resolved = append(resolved, entities.ResolvedDay{
				Name:      dayName(day.Name, dayIdx),
				Order:     dayIdx,
				Exercises: exercises,
			})
		}
	}

	return resolved, missing.items, nil
}

func refID(item entities.ExerciseRef) (int64, bool) {
	if item.ExerciseID == nil || *item.ExerciseID == 0 {
		return 0, false
	}
	return *item.ExerciseID, true
}

func resolvedFrom(item entities.ExerciseRef, entry *entities.CatalogEntry, order int) entities.ResolvedExercise {
	var sets *int
	if item.Sets != nil {
		v := *item.Sets
		sets = &v
	}
	return entities.ResolvedExercise{
		Entry: entry,
		Sets:  sets,
		Reps:  strings.TrimSpace(item.Reps),
		Notes: strings.TrimSpace(item.Notes),
		Order: order,
	}
}

func dayName(name string, idx int) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return defaultDayName(idx)
}

type orderedSet[T comparable] struct {
	seen  map[T]struct{}
	items []T
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{seen: make(map[T]struct{}), items: []T{}}
}

func (s *orderedSet[T]) add(v T) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
