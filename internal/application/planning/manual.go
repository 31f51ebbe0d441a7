package planning

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

// ManualExercise is one exercise of a coach-authored structured plan. Values arrive as
// loosely typed JSON and are coerced by FromManual.
type ManualExercise struct {
	ExerciseID any     `json:"exercise_id"`
	Sets       any     `json:"sets"`
	Reps       *string `json:"reps"`
	Notes      *string `json:"notes"`
}

// ManualDay is one day of a coach-authored structured plan.
type ManualDay struct {
	Day       string           `json:"day"`
	Exercises []ManualExercise `json:"exercises"`
}

// FromManual converts a structured manual plan into ID based exercise references.
// Exercise IDs that are not integers are left empty so resolution skips them.
func FromManual(days []ManualDay) entities.UnresolvedPlan {
	plan := make(entities.UnresolvedPlan, 0, len(days))
	for _, day := range days {
		block := entities.DayBlock{
			Name:      strings.TrimSpace(day.Day),
			Exercises: make([]entities.ExerciseRef, 0, len(day.Exercises)),
		}
		for _, ex := range day.Exercises {
			ref := entities.ExerciseRef{
				ExerciseID: CoerceID(ex.ExerciseID),
				Sets:       CoerceSets(ex.Sets),
			}
			if ex.Reps != nil {
				ref.Reps = strings.TrimSpace(*ex.Reps)
			}
			if ex.Notes != nil {
				ref.Notes = strings.TrimSpace(*ex.Notes)
			}
			block.Exercises = append(block.Exercises, ref)
		}
		plan = append(plan, block)
	}
	return plan
}

// CoerceID converts integers, integral strings and floats (truncated) to a catalog ID.
func CoerceID(v any) *int64 {
	var id int64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		id = int64(t)
	case int:
		id = int64(t)
	case int64:
		id = t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			id = n
		} else if f, err := t.Float64(); err == nil {
			id = int64(f)
		} else {
			return nil
		}
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil
		}
		id = n
	default:
		return nil
	}
	return &id
}
