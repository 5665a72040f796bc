package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
)

// CacheInvalidationService drops cached listings and profiles when a
// business change event arrives on the bus
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for business events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelBusinessUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to business updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.BusinessEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent invalidates the caches a business change can affect: the
// profile entry, the repository listing entries, and the HTTP response
// cache for listing routes. Moderation and premium changes alter which
// rows the public listing contains, so listings always go.
func (s *CacheInvalidationService) handleEvent(event *entities.BusinessEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("business_id", event.BusinessID).
		Msg("processing cache invalidation")

	if event.Slug != "" {
		if err := s.cache.Delete(ctx, fmt.Sprintf("business:%s", event.Slug)); err != nil {
			log.Warn().Err(err).Str("slug", event.Slug).Msg("failed to invalidate profile cache")
		}
	}

	for _, prefix := range []string{"businesses:list:", "http:cache:"} {
		if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache prefix")
		}
	}
}
