package entities

import (
	"fmt"
	"time"
)

// PlanStatus tracks the generation state of one plan kind for a week
type PlanStatus string

const (
	PlanStatusPending    PlanStatus = "pending"
	PlanStatusGenerating PlanStatus = "generating"
	PlanStatusReady      PlanStatus = "ready"
	PlanStatusError      PlanStatus = "error"
)

// PlanKind identifies which plan of a week is addressed
type PlanKind string

const (
	PlanKindWorkout PlanKind = "workout"
	PlanKindDiet    PlanKind = "diet"
)

// StatusColumn returns the weeks column holding the status for the kind.
func (k PlanKind) StatusColumn() (string, error) {
	switch k {
	case PlanKindWorkout:
		return "workout_status", nil
	case PlanKindDiet:
		return "diet_status", nil
	default:
		return "", fmt.Errorf("unknown plan kind %q", string(k))
	}
}

// Week is the scheduling unit of a student. It owns at most one workout and one diet.
type Week struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     int64      `json:"student_id" db:"student_id"`
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	EndDate       time.Time  `json:"end_date" db:"end_date"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	WorkoutStatus PlanStatus `json:"workout_status" db:"workout_status"`
	DietStatus    PlanStatus `json:"diet_status" db:"diet_status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Status returns the status field for the given kind.
func (w *Week) Status(kind PlanKind) PlanStatus {
	if kind == PlanKindDiet {
		return w.DietStatus
	}
	return w.WorkoutStatus
}
