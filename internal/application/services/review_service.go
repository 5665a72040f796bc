package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// ReviewService handles business reviews. Reviews are immutable: there
// is no edit or delete surface.
type ReviewService struct {
	repo         repositories.ReviewRepository
	businessRepo repositories.BusinessRepository
	searchRepo   repositories.BusinessSearchRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	repo repositories.ReviewRepository,
	businessRepo repositories.BusinessRepository,
	searchRepo repositories.BusinessSearchRepository,
) *ReviewService {
	return &ReviewService{
		repo:         repo,
		businessRepo: businessRepo,
		searchRepo:   searchRepo,
	}
}

// Create writes a review and refreshes the business rating aggregate
func (s *ReviewService) Create(ctx context.Context, author *entities.User, businessID string, rating int, comment string) (*entities.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsApproved {
		return nil, apperrors.NewNotFoundError("business not found")
	}

	review := &entities.Review{
		ID:         uuid.New().String(),
		UserID:     author.ID,
		BusinessID: businessID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		UserName:   author.FullName,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshAggregate(ctx, business)

	return review, nil
}

// ListByBusiness retrieves reviews for a business, newest first
func (s *ReviewService) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.Review, error) {
	return s.repo.ListByBusiness(ctx, businessID, limit, offset)
}

// refreshAggregate recomputes the denormalized rating on the business
// and keeps the search index in step. Aggregate failures do not fail
// the review write.
func (s *ReviewService) refreshAggregate(ctx context.Context, business *entities.Business) {
	avg, count, err := s.repo.AggregateForBusiness(ctx, business.ID)
	if err != nil {
		log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to aggregate reviews")
		return
	}

	if err := s.businessRepo.UpdateRating(ctx, business.ID, avg, count); err != nil {
		log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to update business rating")
		return
	}

	if s.searchRepo != nil {
		business.RatingAvg = avg
		business.RatingCount = count
		if err := s.searchRepo.Index(ctx, business); err != nil {
			log.Warn().Err(err).Str("business_id", business.ID).Msg("failed to re-index rated business")
		}
	}
}
