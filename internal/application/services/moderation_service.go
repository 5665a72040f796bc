package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
)

// ModerationService handles the admin review queue. Role checks happen
// at the middleware layer; these operations assume an admin caller.
type ModerationService struct {
	repo       repositories.BusinessRepository
	searchRepo repositories.BusinessSearchRepository
	eventBus   providers.EventBus
}

// NewModerationService creates a new moderation service
func NewModerationService(
	repo repositories.BusinessRepository,
	searchRepo repositories.BusinessSearchRepository,
	eventBus providers.EventBus,
) *ModerationService {
	return &ModerationService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// Pending lists businesses awaiting review, oldest first
func (s *ModerationService) Pending(ctx context.Context) ([]*entities.Business, error) {
	return s.repo.ListPending(ctx)
}

// Approve makes a business publicly visible. Approving an already
// approved business is a no-op; concurrent approvals of the same id
// converge on the same state (last-write-wins on the flag).
func (s *ModerationService) Approve(ctx context.Context, id string) (*entities.Business, error) {
	if err := s.repo.SetApproval(ctx, id, true); err != nil {
		return nil, err
	}

	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, business); err != nil {
			log.Warn().Err(err).Str("business_id", id).Msg("failed to index approved business")
		}
	}

	s.publish(ctx, entities.BusinessApproved, business)

	return business, nil
}

// Reject removes a pending submission permanently
func (s *ModerationService) Reject(ctx context.Context, id string) error {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("business_id", id).Msg("failed to remove rejected business from index")
		}
	}

	s.publish(ctx, entities.BusinessRejected, business)

	return nil
}

// Revoke soft-hides an approved business by flipping the flag back.
// The record survives; it simply leaves the public listing.
func (s *ModerationService) Revoke(ctx context.Context, id string) error {
	if err := s.repo.SetApproval(ctx, id, false); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("business_id", id).Msg("failed to remove revoked business from index")
		}
	}

	s.publish(ctx, entities.BusinessRejected, &entities.Business{ID: id})

	return nil
}

func (s *ModerationService) publish(ctx context.Context, eventType entities.BusinessEventType, business *entities.Business) {
	if s.eventBus == nil {
		return
	}

	event := &entities.BusinessEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		BusinessID: business.ID,
		Slug:       business.Slug,
		Category:   business.Category,
		City:       business.City,
		OccurredAt: time.Now(),
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelBusinessUpdates, event); err != nil {
		log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to publish moderation event")
	}
}
