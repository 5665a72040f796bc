package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	tsclient "github.com/directoriodominicano/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements free-text business search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements BusinessSearchRepository
var _ repositories.BusinessSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts a business document
func (a *TypesenseAdapter) Index(ctx context.Context, business *entities.Business) error {
	document := map[string]interface{}{
		"id":           business.ID,
		"name":         business.Name,
		"slug":         business.Slug,
		"description":  business.Description,
		"category":     business.Category,
		"city":         business.City,
		"is_approved":  business.IsApproved,
		"is_premium":   business.IsPremium,
		"rating":       business.RatingAvg,
		"review_count": business.RatingCount,
		"created_at":   business.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.BusinessesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index business: %w", err)
	}

	return nil
}

// Delete removes a business from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.BusinessesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete business from index: %w", err)
	}
	return nil
}

// Search runs a free-text query against name and description with the
// listing filters applied. Only approved businesses are returned;
// premium listings rank first, newest next.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Business, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		query = "*"
	}

	filterBy, ok := searchFilters(params)
	if !ok {
		return []*entities.Business{}, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 30
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,description"),
		FilterBy: pointer.String(filterBy),
		SortBy:   pointer.String("is_premium:desc,created_at:desc"),
		Page:     pointer.Int(params.Offset/limit + 1),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.BusinessesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search businesses: %w", err)
	}

	businesses := []*entities.Business{}
	if result.Hits == nil {
		return businesses, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		businesses = append(businesses, documentToBusiness(doc))
	}

	return businesses, nil
}

// searchFilters builds the filter_by expression. Category and city are
// closed enumerations, so the canonical value from the enumeration
// goes into the expression, never the caller's string; a value outside
// the enumeration cannot match any stored document and the second
// return reports the filter as unsatisfiable.
func searchFilters(params repositories.SearchParams) (string, bool) {
	filters := []string{"is_approved:=true"}

	if params.Category != "" {
		category, ok := entities.CategoryBySlug(params.Category)
		if !ok {
			return "", false
		}
		filters = append(filters, "category:="+category.Slug)
	}
	if params.City != "" {
		city, ok := entities.CanonicalCity(params.City)
		if !ok {
			return "", false
		}
		filters = append(filters, fmt.Sprintf("city:=`%s`", city))
	}

	return strings.Join(filters, " && "), true
}

// documentToBusiness reconstructs a partial entity from an index
// document. Callers needing the full record hydrate it from the
// primary store by slug.
func documentToBusiness(doc map[string]interface{}) *entities.Business {
	business := &entities.Business{}

	if val, ok := doc["id"].(string); ok {
		business.ID = val
	}
	if val, ok := doc["name"].(string); ok {
		business.Name = val
	}
	if val, ok := doc["slug"].(string); ok {
		business.Slug = val
	}
	if val, ok := doc["description"].(string); ok {
		business.Description = val
	}
	if val, ok := doc["category"].(string); ok {
		business.Category = val
	}
	if val, ok := doc["city"].(string); ok {
		business.City = val
	}
	if val, ok := doc["is_approved"].(bool); ok {
		business.IsApproved = val
	}
	if val, ok := doc["is_premium"].(bool); ok {
		business.IsPremium = val
	}
	if val, ok := doc["rating"].(float64); ok {
		business.RatingAvg = val
	}
	if val, ok := doc["review_count"].(float64); ok {
		business.RatingCount = int(val)
	}
	if val, ok := doc["created_at"].(float64); ok {
		business.CreatedAt = time.Unix(int64(val), 0)
	}

	return business
}
