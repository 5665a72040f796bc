package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/directoriodominicano/backend/pkg/slug"
)

// maxSlugAttempts bounds the suffix retry when a derived slug collides
const maxSlugAttempts = 10

// BusinessService handles registration and owner-side management of
// business profiles
type BusinessService struct {
	repo       repositories.BusinessRepository
	searchRepo repositories.BusinessSearchRepository
	eventBus   providers.EventBus
}

// NewBusinessService creates a new business service. searchRepo and
// eventBus may be nil in degraded mode.
func NewBusinessService(
	repo repositories.BusinessRepository,
	searchRepo repositories.BusinessSearchRepository,
	eventBus providers.EventBus,
) *BusinessService {
	return &BusinessService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// CreateInput carries the owner-supplied registration fields
type CreateInput struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	City            string   `json:"city"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	Phone           string   `json:"phone"`
	WhatsApp        string   `json:"whatsapp"`
	Website         string   `json:"website"`
	Instagram       string   `json:"instagram"`
	Facebook        string   `json:"facebook"`
	Email           string   `json:"email"`
	LogoURL         string   `json:"logo_url"`
	Images          []string `json:"images"`
	VideoURL        string   `json:"video_url"`
	Schedule        string   `json:"schedule"`
}

// Create registers a new business for an owner. The profile starts
// unapproved and becomes publicly visible only after moderation. The
// premium flag mirrors the owner's role at registration time.
func (s *BusinessService) Create(ctx context.Context, owner *entities.User, input CreateInput) (*entities.Business, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	businessSlug, err := s.availableSlug(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	business := &entities.Business{
		ID:              uuid.New().String(),
		OwnerID:         owner.ID,
		Name:            strings.TrimSpace(input.Name),
		Slug:            businessSlug,
		Category:        input.Category,
		City:            input.City,
		Description:     strings.TrimSpace(input.Description),
		LongDescription: input.LongDescription,
		Address:         input.Address,
		Lat:             input.Lat,
		Lng:             input.Lng,
		Phone:           input.Phone,
		WhatsApp:        input.WhatsApp,
		Website:         input.Website,
		Instagram:       input.Instagram,
		Facebook:        input.Facebook,
		Email:           input.Email,
		LogoURL:         input.LogoURL,
		Images:          input.Images,
		VideoURL:        input.VideoURL,
		Schedule:        input.Schedule,
		IsPremium:       owner.IsPremium(),
		IsApproved:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if business.Images == nil {
		business.Images = []string{}
	}

	if err := s.repo.Create(ctx, business); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.BusinessCreated, business)

	return business, nil
}

// Update applies an owner edit. Only the owner (or an admin) may edit;
// approved businesses are re-indexed so search stays current.
func (s *BusinessService) Update(ctx context.Context, actor *entities.User, id string, input CreateInput) (*entities.Business, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if business.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only the owner can edit this business")
	}

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	// The slug survives edits: it is the public URL of the profile.
	business.Name = strings.TrimSpace(input.Name)
	business.Category = input.Category
	business.City = input.City
	business.Description = strings.TrimSpace(input.Description)
	business.LongDescription = input.LongDescription
	business.Address = input.Address
	business.Lat = input.Lat
	business.Lng = input.Lng
	business.Phone = input.Phone
	business.WhatsApp = input.WhatsApp
	business.Website = input.Website
	business.Instagram = input.Instagram
	business.Facebook = input.Facebook
	business.Email = input.Email
	business.LogoURL = input.LogoURL
	if input.Images != nil {
		business.Images = input.Images
	}
	business.VideoURL = input.VideoURL
	business.Schedule = input.Schedule

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}

	if business.IsApproved && s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, business); err != nil {
			log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to re-index business")
		}
	}

	s.publish(ctx, entities.BusinessUpdated, business)

	return business, nil
}

// ListByOwner returns all businesses of one owner, pending included
func (s *BusinessService) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Business, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// RecordView bumps the profile view counter
func (s *BusinessService) RecordView(ctx context.Context, id string) error {
	return s.repo.IncrementViews(ctx, id)
}

// RecordClick bumps the contact click counter
func (s *BusinessService) RecordClick(ctx context.Context, id string) error {
	return s.repo.IncrementClicks(ctx, id)
}

// availableSlug derives the slug from the name and resolves collisions
// with a bounded numeric suffix: base, base-2, base-3, ...
func (s *BusinessService) availableSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", apperrors.NewValidationError("name produces an empty slug")
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, attempt)
	}

	return "", apperrors.NewConflictError(fmt.Sprintf("no free slug for %q after %d attempts", name, maxSlugAttempts))
}

func validateCreateInput(input CreateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return apperrors.NewValidationError("description is required")
	}
	if !entities.ValidCategorySlug(input.Category) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown category %q", input.Category))
	}
	if !entities.ValidCity(input.City) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown city %q", input.City))
	}
	return nil
}

func (s *BusinessService) publish(ctx context.Context, eventType entities.BusinessEventType, business *entities.Business) {
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
		log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to publish business event")
	}
}
