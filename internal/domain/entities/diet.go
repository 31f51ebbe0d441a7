package entities

import "time"

// Diet is the free-text diet plan of a week
type Diet struct {
	ID        int64     `json:"id" db:"id"`
	WeekID    int64     `json:"week" db:"week_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
