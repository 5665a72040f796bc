package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/directoriodominicano/backend/internal/api/query"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/observability"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Listing is the outcome of one directory fetch. FromFallback marks
// results served from the local sample set because the record store
// could not be reached; an empty result from a healthy store is NOT a
// fallback. Stale marks results that were superseded by a newer filter
// state while the fetch was in flight.
type Listing struct {
	Businesses     []*entities.Business
	FromFallback   bool
	FallbackReason string
	Generation     uint64
	Stale          bool
}

// DirectoryService resolves the public listing for a filter state. The
// listing is a pure function of the filter triple and the data
// snapshot: same inputs, same ordered output.
type DirectoryService struct {
	repo       repositories.BusinessRepository
	searchRepo repositories.BusinessSearchRepository
	metrics    *observability.Metrics
	fixtures   []*entities.Business
	pageSize   int

	mu         sync.Mutex
	generation uint64
	current    *Listing
}

// NewDirectoryService creates a new directory service. searchRepo and
// metrics may be nil (degraded mode); fixtures back the store-failure
// fallback.
func NewDirectoryService(
	repo repositories.BusinessRepository,
	searchRepo repositories.BusinessSearchRepository,
	metrics *observability.Metrics,
	pageSize int,
) *DirectoryService {
	if pageSize <= 0 {
		pageSize = 30
	}
	return &DirectoryService{
		repo:       repo,
		searchRepo: searchRepo,
		metrics:    metrics,
		fixtures:   entities.SampleBusinesses(),
		pageSize:   pageSize,
	}
}

// Fetch resolves the listing for a filter state. Each call opens a new
// generation; a result commits as the current listing only if no newer
// fetch started in the meantime (latest-filter-wins).
func (s *DirectoryService) Fetch(ctx context.Context, state query.FilterState) *Listing {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	listing := s.resolve(ctx, state)
	listing.Generation = gen

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.current = listing
	} else {
		listing.Stale = true
	}

	return listing
}

// Current returns the last committed listing, or nil before the first
// fetch completes.
func (s *DirectoryService) Current() *Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// GetBySlug resolves one approved business profile by slug
func (s *DirectoryService) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	business, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !business.IsApproved {
		return nil, apperrors.NewNotFoundError("business " + slug + " not found")
	}
	return business, nil
}

func (s *DirectoryService) resolve(ctx context.Context, state query.FilterState) *Listing {
	term := strings.TrimSpace(state.Search)

	if term != "" && s.searchRepo != nil {
		results, err := s.searchRepo.Search(ctx, repositories.SearchParams{
			Query:    term,
			Category: state.Category,
			City:     state.City,
			Limit:    s.pageSize,
			Offset:   (state.Page - 1) * s.pageSize,
		})
		if err == nil {
			return &Listing{Businesses: results}
		}
		// Index down is not store down; fall through to the primary
		// store with the in-process term filter.
		log.Warn().Err(err).Str("term", term).Msg("search index unavailable, filtering in process")
	}

	businesses, err := s.repo.List(ctx, repositories.BusinessFilter{
		Category:     state.Category,
		City:         state.City,
		ApprovedOnly: true,
		Limit:        s.pageSize,
		Offset:       (state.Page - 1) * s.pageSize,
	})
	if err != nil {
		log.Warn().Err(err).Msg("record store unreachable, serving sample listing")
		if s.metrics != nil {
			observability.RecordListingFallback(ctx, s.metrics, string(apperrors.TypeOf(err)))
		}
		return &Listing{
			Businesses:     s.filterFixtures(state),
			FromFallback:   true,
			FallbackReason: err.Error(),
		}
	}

	if term != "" {
		businesses = filterByTerm(businesses, term)
	}

	return &Listing{Businesses: businesses}
}

// filterFixtures applies the listing filters to the local sample set:
// category by case-insensitive equality, search by case-insensitive
// substring over name or description.
func (s *DirectoryService) filterFixtures(state query.FilterState) []*entities.Business {
	result := make([]*entities.Business, 0, len(s.fixtures))
	for _, b := range s.fixtures {
		if state.Category != "" && !strings.EqualFold(b.Category, state.Category) {
			continue
		}
		result = append(result, b)
	}

	if term := strings.TrimSpace(state.Search); term != "" {
		result = filterByTerm(result, term)
	}

	// Same presentation order as the remote path
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].IsPremium != result[j].IsPremium {
			return result[i].IsPremium
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

func filterByTerm(businesses []*entities.Business, term string) []*entities.Business {
	needle := strings.ToLower(term)
	matched := make([]*entities.Business, 0, len(businesses))
	for _, b := range businesses {
		if strings.Contains(strings.ToLower(b.Name), needle) ||
			strings.Contains(strings.ToLower(b.Description), needle) {
			matched = append(matched, b)
		}
	}
	return matched
}
