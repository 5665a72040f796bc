package repositories

import (
	"context"

	"github.com/directoriodominicano/backend/internal/domain/entities"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	// Create creates a new business
	Create(ctx context.Context, business *entities.Business) error

	// GetByID retrieves a business by ID
	GetByID(ctx context.Context, id string) (*entities.Business, error)

	// GetBySlug retrieves a business by its URL slug
	GetBySlug(ctx context.Context, slug string) (*entities.Business, error)

	// SlugExists reports whether a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Update updates a business
	Update(ctx context.Context, business *entities.Business) error

	// List retrieves businesses matching the filter, premium first
	List(ctx context.Context, filter BusinessFilter) ([]*entities.Business, error)

	// ListByOwner retrieves all businesses owned by a user
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Business, error)

	// ListPending retrieves businesses awaiting moderation
	ListPending(ctx context.Context) ([]*entities.Business, error)

	// SetApproval flips the moderation flag on a business
	SetApproval(ctx context.Context, id string, approved bool) error

	// Delete removes a business (moderation reject)
	Delete(ctx context.Context, id string) error

	// IncrementViews bumps the profile view counter
	IncrementViews(ctx context.Context, id string) error

	// IncrementClicks bumps the contact click counter
	IncrementClicks(ctx context.Context, id string) error

	// SetPremiumByOwner marks every business of an owner as premium.
	// Part of the subscription activation transaction.
	SetPremiumByOwner(ctx context.Context, ownerID string, premium bool) error

	// UpdateRating refreshes the denormalized review aggregate
	UpdateRating(ctx context.Context, id string, avg float64, count int) error
}

// BusinessSearchRepository defines the interface for the search index
// (Typesense). It covers the free-text path of the directory listing.
type BusinessSearchRepository interface {
	// Search runs a free-text query with the listing filters applied
	Search(ctx context.Context, params SearchParams) ([]*entities.Business, error)

	// Index upserts a business document
	Index(ctx context.Context, business *entities.Business) error

	// Delete removes a business from the index
	Delete(ctx context.Context, id string) error
}

// BusinessFilter defines predicates for the public listing. Approved
// is implied for the public path; zero-value string fields mean "no
// constraint".
type BusinessFilter struct {
	Category     string
	City         string
	ApprovedOnly bool
	Limit        int
	Offset       int
}

// SearchParams defines parameters for free-text business search
type SearchParams struct {
	Query    string
	Category string
	City     string
	Limit    int
	Offset   int
}
