package entities

// CatalogEntry is an exercise definition from the visual resource catalog.
// Plans reference entries by ID and never copy their data.
type CatalogEntry struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	MuscleGroup string `json:"muscle_group" db:"muscle_group"`
	Level       string `json:"level" db:"level"`
	VideoURL    string `json:"video_url" db:"video_url"`
	Equipment   string `json:"equipment" db:"equipment"`
}
