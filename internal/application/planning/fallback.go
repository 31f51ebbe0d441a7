package planning

import (
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

const (
	fallbackExercisesPerDay = 4
	fallbackReps            = "10-12"
	minFallbackDays         = 3
)

var fallbackWeekDays = []string{"Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado"}

// BuildFallbackPlan builds a deterministic plan straight from the catalog by rotating its
// entries across the week. The same catalog and arguments always produce the same plan.
func BuildFallbackPlan(entries []entities.CatalogEntry, level string, daysCount *int, focusMuscle string) entities.ResolvedPlan {
	if len(entries) == 0 {
		return entities.ResolvedPlan{}
	}

	sets := 3
	normalizedLevel := strings.ToLower(level)
	if strings.Contains(normalizedLevel, "inter") || strings.Contains(normalizedLevel, "advance") {
		sets = 4
	}

	days := fallbackWeekDays
	if daysCount != nil && *daysCount != 0 {
		n := max(minFallbackDays, min(*daysCount, len(fallbackWeekDays)))
		days = fallbackWeekDays[:n]
	}

	ordered := orderByFocus(entries, focusMuscle)
	perDay := min(fallbackExercisesPerDay, len(ordered))

	plan := make(entities.ResolvedPlan, 0, len(days))
	cursor := 0
	for dayIdx, name := range days {
		exercises := make([]entities.ResolvedExercise, 0, perDay)
		for order := 0; order < perDay; order++ {
			entry := ordered[cursor%len(ordered)]
			daySets := sets
			exercises = append(exercises, entities.ResolvedExercise{
				Entry: entry,
				Sets:  &daySets,
				Reps:  fallbackReps,
				Notes: entry.MuscleGroup,
				Order: order,
			})
			cursor++
		}
		plan = append(plan, entities.ResolvedDay{
			Name:      name,
			Order:     dayIdx,
			Exercises: exercises,
		})
	}

	return plan
}

// orderByFocus moves the entries of the focus muscle group to the front, keeping the
// relative order of both partitions. Without matches the catalog order is kept.
func orderByFocus(entries []entities.CatalogEntry, focusMuscle string) []*entities.CatalogEntry {
	all := make([]*entities.CatalogEntry, len(entries))
	for i := range entries {
		all[i] = &entries[i]
	}

	focus := strings.ToLower(strings.TrimSpace(focusMuscle))
	if focus == "" {
		return all
	}

	var focused, rest []*entities.CatalogEntry
	for _, entry := range all {
		if strings.ToLower(strings.TrimSpace(entry.MuscleGroup)) == focus {
			focused = append(focused, entry)
		} else {
			rest = append(rest, entry)
		}
	}
	if len(focused) == 0 {
		return all
	}
	return append(focused, rest...)
}
