package planning

import (
	"strconv"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// RenderWorkout flattens a resolved plan into its text form, one paragraph per day:
//
//	Lunes:
//	- Sentadilla | 4x10-12 - Piernas
func RenderWorkout(plan entities.ResolvedPlan) string {
	blocks := make([]string, 0, len(plan))
	for _, day := range plan {
		name := strings.TrimSpace(day.Name)
		if name == "" {
			name = "Dia"
		}
		lines := []string{name + ":"}

		for _, item := range day.Exercises {
			if item.Entry == nil {
				continue
			}
			line := "- " + item.Entry.Title
			if prescription := formatPrescription(item.Sets, item.Reps); prescription != "" {
				line += " | " + prescription
			}
			if notes := strings.TrimSpace(item.Notes); notes != "" {
				line += " - " + notes
			}
			lines = append(lines, line)
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

func formatPrescription(sets *int, reps string) string {
	reps = strings.TrimSpace(reps)
	hasSets := sets != nil && *sets != 0
	switch {
	case hasSets && reps != "":
		return strconv.Itoa(*sets) + "x" + reps
	case reps != "":
		return reps
	case hasSets:
		return strconv.Itoa(*sets) + "x"
	default:
		return ""
	}
}
