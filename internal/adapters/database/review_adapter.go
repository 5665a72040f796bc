package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

const reviewsTable = "reviews"

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new review. One review per user per business,
// enforced by the reviews_user_business_key constraint.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Insert(reviewsTable).Rows(goqu.Record{
		"id":          review.ID,
		"user_id":     review.UserID,
		"business_id": review.BusinessID,
		"rating":      review.Rating,
		"comment":     review.Comment,
		"created_at":  review.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "reviews_user_business_key") {
			return apperrors.NewConflictError("user has already reviewed this business")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// ListByBusiness retrieves reviews for a business, newest first. The
// author name is joined in so the listing can render without a second
// round trip.
func (a *ReviewAdapter) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.Review, error) {
	ds := a.db.Select(
		goqu.I("r.id"), goqu.I("r.user_id"), goqu.I("r.business_id"),
		goqu.I("r.rating"), goqu.I("r.comment"), goqu.I("u.full_name"),
		goqu.I("r.created_at"),
	).
		From(goqu.T(reviewsTable).As("r")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.Ex{"r.user_id": goqu.I("u.id")})).
		Where(goqu.Ex{"r.business_id": businessID}).
		Order(goqu.I("r.created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review := &entities.Review{}
		var userName sql.NullString
		err := rows.Scan(
			&review.ID, &review.UserID, &review.BusinessID,
			&review.Rating, &review.Comment, &userName, &review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.UserName = userName.String
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// AggregateForBusiness returns the rating average and count
func (a *ReviewAdapter) AggregateForBusiness(ctx context.Context, businessID string) (float64, int, error) {
	query, args, err := a.db.Select(
		goqu.COALESCE(goqu.AVG("rating"), 0),
		goqu.COUNT("*"),
	).
		From(reviewsTable).
		Where(goqu.Ex{"business_id": businessID}).
		ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build aggregate query", err)
	}

	var avg float64
	var count int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg, &count)
	if err != nil {
		return 0, 0, apperrors.NewInternalError(fmt.Sprintf("failed to aggregate reviews for business %s", businessID), err)
	}

	return avg, count, nil
}
