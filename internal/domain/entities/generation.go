package entities

// StudentProfile is the part of a student record that prompts and fallbacks need
type StudentProfile struct {
	Age       int     `json:"age"`
	WeightKG  float64 `json:"weight"`
	HeightCM  int     `json:"height"`
	Level     string  `json:"level"`
	Objective string  `json:"objective"`
}

// GenerationContext carries the profile and the coach hints for one generation run
type GenerationContext struct {
	Profile      StudentProfile `json:"profile"`
	FocusMuscle  string         `json:"focus_muscle,omitempty"`
	DaysPerWeek  *int           `json:"days_per_week,omitempty"`
	Notes        string         `json:"ai_notes,omitempty"`
	DietNotes    string         `json:"diet_notes,omitempty"`
	DietCalories *int           `json:"diet_calories,omitempty"`
}
