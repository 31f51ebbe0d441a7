package entities

// ExerciseRef is an exercise reference that has not been matched against the catalog yet.
// Generated and legacy text plans reference exercises by Name, manual plans by ExerciseID.
type ExerciseRef struct {
	Name       string `json:"name,omitempty"`
	ExerciseID *int64 `json:"exercise_id,omitempty"`
	Sets       *int   `json:"sets,omitempty"`
	Reps       string `json:"reps,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// DayBlock is a named day of an unresolved plan.
type DayBlock struct {
	Name      string        `json:"day"`
	Exercises []ExerciseRef `json:"exercises"`
}

// UnresolvedPlan is the ordered list of day blocks produced by the plan parsers.
type UnresolvedPlan []DayBlock

// ResolvedExercise is an exercise matched to a concrete catalog entry.
type ResolvedExercise struct {
	Entry *CatalogEntry `json:"exercise"`
	Sets  *int          `json:"sets"`
	Reps  string        `json:"reps"`
	Notes string        `json:"notes"`
	Order int           `json:"order"`
}

// ResolvedDay is a day whose exercises all point at catalog entries.
// Order is the index of the day in the source plan.
type ResolvedDay struct {
	Name      string             `json:"day"`
	Order     int                `json:"order"`
	Exercises []ResolvedExercise `json:"exercises"`
}

// ResolvedPlan is a fully resolved weekly plan ready to be persisted.
type ResolvedPlan []ResolvedDay

// Titles returns the catalog titles of the plan per day, in order.
func (p ResolvedPlan) Titles() [][]string {
	out := make([][]string, 0, len(p))
	for _, day := range p {
		titles := make([]string, 0, len(day.Exercises))
		for _, ex := range day.Exercises {
			if ex.Entry != nil {
				titles = append(titles, ex.Entry.Title)
			}
		}
		out = append(out, titles)
	}
	return out
}
