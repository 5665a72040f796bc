package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
)

// CachedBusinessAdapter wraps a BusinessRepository with read-through
// caching. Writes pass through and invalidate the affected keys.
type CachedBusinessAdapter struct {
	adapter repositories.BusinessRepository
	cache   providers.CacheProvider
}

// NewCachedBusinessAdapter creates a new cached business adapter
func NewCachedBusinessAdapter(adapter repositories.BusinessRepository, cache providers.CacheProvider) repositories.BusinessRepository {
	return &CachedBusinessAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	businessTTL     = 300 // 5 minutes for single business
	businessListTTL = 120 // 2 minutes for listings
)

func businessCacheKey(slug string) string {
	return fmt.Sprintf("business:%s", slug)
}

func businessListCacheKey(filter repositories.BusinessFilter) string {
	return fmt.Sprintf("businesses:list:%s:%s:%t:%d:%d",
		filter.Category, filter.City, filter.ApprovedOnly, filter.Limit, filter.Offset)
}

// GetBySlug retrieves a business by slug with caching
func (a *CachedBusinessAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	cacheKey := businessCacheKey(slug)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var business entities.Business
		if err := json.Unmarshal(cached, &business); err == nil {
			return &business, nil
		}
	}

	business, err := a.adapter.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		if data, err := json.Marshal(business); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, businessTTL); err != nil {
				log.Warn().Err(err).Str("slug", slug).Msg("failed to cache business")
			}
		}
	}()

	return business, nil
}

// List retrieves businesses matching the filter with caching
func (a *CachedBusinessAdapter) List(ctx context.Context, filter repositories.BusinessFilter) ([]*entities.Business, error) {
	cacheKey := businessListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var businesses []*entities.Business
		if err := json.Unmarshal(cached, &businesses); err == nil {
			return businesses, nil
		}
	}

	businesses, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		if data, err := json.Marshal(businesses); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, businessListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache business list")
			}
		}
	}()

	return businesses, nil
}

// GetByID retrieves a business by ID. Uncached: moderation and owner
// flows need current data.
func (a *CachedBusinessAdapter) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	return a.adapter.GetByID(ctx, id)
}

// SlugExists reports whether a slug is already taken
func (a *CachedBusinessAdapter) SlugExists(ctx context.Context, slug string) (bool, error) {
	return a.adapter.SlugExists(ctx, slug)
}

// ListByOwner retrieves all businesses owned by a user
func (a *CachedBusinessAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Business, error) {
	return a.adapter.ListByOwner(ctx, ownerID)
}

// ListPending retrieves businesses awaiting moderation
func (a *CachedBusinessAdapter) ListPending(ctx context.Context) ([]*entities.Business, error) {
	return a.adapter.ListPending(ctx)
}

// Create creates a new business and invalidates listings
func (a *CachedBusinessAdapter) Create(ctx context.Context, business *entities.Business) error {
	if err := a.adapter.Create(ctx, business); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	return nil
}

// Update updates a business and invalidates its cache entries
func (a *CachedBusinessAdapter) Update(ctx context.Context, business *entities.Business) error {
	if err := a.adapter.Update(ctx, business); err != nil {
		return err
	}
	a.invalidateBusiness(ctx, business.Slug)
	return nil
}

// SetApproval flips the moderation flag and invalidates listings
func (a *CachedBusinessAdapter) SetApproval(ctx context.Context, id string, approved bool) error {
	if err := a.adapter.SetApproval(ctx, id, approved); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	a.invalidateAllBusinesses(ctx)
	return nil
}

// Delete removes a business and invalidates its cache entries
func (a *CachedBusinessAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	a.invalidateAllBusinesses(ctx)
	return nil
}

// IncrementViews bumps the view counter. The cached profile keeps the
// stale counter until its TTL lapses; counters are not consistency
// critical.
func (a *CachedBusinessAdapter) IncrementViews(ctx context.Context, id string) error {
	return a.adapter.IncrementViews(ctx, id)
}

// IncrementClicks bumps the click counter
func (a *CachedBusinessAdapter) IncrementClicks(ctx context.Context, id string) error {
	return a.adapter.IncrementClicks(ctx, id)
}

// SetPremiumByOwner marks every business of an owner as premium
func (a *CachedBusinessAdapter) SetPremiumByOwner(ctx context.Context, ownerID string, premium bool) error {
	if err := a.adapter.SetPremiumByOwner(ctx, ownerID, premium); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	a.invalidateAllBusinesses(ctx)
	return nil
}

// UpdateRating refreshes the denormalized review aggregate
func (a *CachedBusinessAdapter) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	if err := a.adapter.UpdateRating(ctx, id, avg, count); err != nil {
		return err
	}
	a.invalidateAllBusinesses(ctx)
	return nil
}

func (a *CachedBusinessAdapter) invalidateBusiness(ctx context.Context, slug string) {
	if err := a.cache.Delete(ctx, businessCacheKey(slug)); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("failed to invalidate business cache")
	}
	a.invalidateLists(ctx)
}

func (a *CachedBusinessAdapter) invalidateLists(ctx context.Context) {
	if err := a.cache.DeleteByPrefix(ctx, "businesses:list:"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate listing cache")
	}
}

// invalidateAllBusinesses clears single-business entries after writes
// keyed by id, where the slug is not at hand.
func (a *CachedBusinessAdapter) invalidateAllBusinesses(ctx context.Context) {
	if err := a.cache.DeleteByPrefix(ctx, "business:"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate business cache")
	}
}
