package entities

import "time"

// Workout is the persisted workout of a week: a text rendering plus its structured breakdown
type Workout struct {
	ID        int64        `json:"id" db:"id"`
	WeekID    int64        `json:"week" db:"week_id"`
	Content   string       `json:"content" db:"content"`
	Days      []WorkoutDay `json:"plan" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// WorkoutDay is one persisted day of a workout
type WorkoutDay struct {
	ID        int64             `json:"id" db:"id"`
	WorkoutID int64             `json:"-" db:"workout_id"`
	Name      string            `json:"name" db:"name"`
	Order     int               `json:"order" db:"order"`
	Exercises []WorkoutExercise `json:"exercises" db:"-"`
}

// WorkoutExercise is one persisted exercise of a workout day
type WorkoutExercise struct {
	ID         int64         `json:"id" db:"id"`
	DayID      int64         `json:"-" db:"day_id"`
	ExerciseID int64         `json:"exercise_id" db:"exercise_id"`
	Exercise   *CatalogEntry `json:"exercise,omitempty" db:"-"`
	Sets       *int          `json:"sets" db:"sets"`
	Reps       string        `json:"reps" db:"reps"`
	Notes      string        `json:"notes" db:"notes"`
	Order      int           `json:"order" db:"order"`
}
