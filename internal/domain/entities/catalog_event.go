package entities

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEventType represents the type of catalog event
type CatalogEventType string

const (
	// CatalogEventInvalidated is published after the exercise catalog changed
	CatalogEventInvalidated CatalogEventType = "invalidated"
)

// CatalogEvent notifies every running instance about a catalog change
type CatalogEvent struct {
	ID        string           `json:"id"`
	EventType CatalogEventType `json:"event_type"`
	Source    string           `json:"source,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewCatalogEvent creates a new catalog event
func NewCatalogEvent(eventType CatalogEventType, source string) *CatalogEvent {
	return &CatalogEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
}
