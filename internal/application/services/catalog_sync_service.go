package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/domain/providers"
)

// CatalogCache is the cached catalog as seen by the sync service
type CatalogCache interface {
	Invalidate(ctx context.Context) error
	PurgeLocal()
}

// CatalogSyncService keeps the in-process catalog tier of every instance coherent.
// Invalidations are broadcast on the event bus and each subscriber purges its local tier.
type CatalogSyncService struct {
	catalog  CatalogCache
	eventBus providers.EventBus
	source   string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewCatalogSyncService creates a new catalog sync service. eventBus may be nil, in which
// case invalidations stay local to the process.
func NewCatalogSyncService(catalog CatalogCache, eventBus providers.EventBus) *CatalogSyncService {
	return &CatalogSyncService{
		catalog:  catalog,
		eventBus: eventBus,
		source:   uuid.NewString(),
	}
}

// Start begins listening for catalog events
func (s *CatalogSyncService) Start(ctx context.Context) error {
	if s.eventBus == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	events, err := s.eventBus.Subscribe(ctx, providers.EventChannelCatalog)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe to catalog events: %w", err)
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	go s.processEvents(events)

	log.Info().Msg("catalog sync service started")
	return nil
}

// Stop stops listening and waits for the event loop to exit
func (s *CatalogSyncService) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.done
		log.Info().Msg("catalog sync service stopped")
	})
}

// Invalidate drops the local and shared catalog caches and tells every other instance to
// drop theirs.
func (s *CatalogSyncService) Invalidate(ctx context.Context) error {
	if err := s.catalog.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	if s.eventBus == nil {
		return nil
	}

	event := entities.NewCatalogEvent(entities.CatalogEventInvalidated, s.source)
	if err := s.eventBus.Publish(ctx, providers.EventChannelCatalog, event); err != nil {
		return fmt.Errorf("failed to publish catalog invalidation: %w", err)
	}
	return nil
}

func (s *CatalogSyncService) processEvents(events <-chan *entities.CatalogEvent) {
	defer close(s.done)
	for event := range events {
		s.handleEvent(event)
	}
}

func (s *CatalogSyncService) handleEvent(event *entities.CatalogEvent) {
	if event == nil || event.Source == s.source {
		return
	}
	if event.EventType != entities.CatalogEventInvalidated {
		log.Debug().Str("event_type", string(event.EventType)).Msg("ignoring catalog event")
		return
	}

	s.catalog.PurgeLocal()
	log.Info().Str("event_id", event.ID).Str("source", event.Source).Msg("purged local catalog cache")
}
