package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

const businessesTable = "businesses"

var businessColumns = []interface{}{
	"id", "owner_id", "name", "slug", "category", "city",
	"description", "long_description", "address", "lat", "lng",
	"phone", "whatsapp", "website", "instagram", "facebook", "email",
	"logo_url", "images", "video_url", "schedule",
	"is_premium", "is_approved", "is_featured", "subscription_expiry",
	"views", "clicks", "rating_avg", "rating_count",
	"created_at", "updated_at",
}

// BusinessAdapter implements the BusinessRepository interface
type BusinessAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBusinessAdapter creates a new business adapter
func NewBusinessAdapter(client *postgres.Client) repositories.BusinessRepository {
	return &BusinessAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new business
func (a *BusinessAdapter) Create(ctx context.Context, business *entities.Business) error {
	query, args, err := a.db.Insert(businessesTable).Rows(businessRecord(business, true)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "businesses_slug_key") {
			return apperrors.NewConflictError(fmt.Sprintf("slug %s already taken", business.Slug))
		}
		return apperrors.NewInternalError("failed to create business", err)
	}

	return nil
}

// GetByID retrieves a business by ID
func (a *BusinessAdapter) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	return a.getByField(ctx, "id", id)
}

// GetBySlug retrieves a business by its URL slug
func (a *BusinessAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	return a.getByField(ctx, "slug", slug)
}

func (a *BusinessAdapter) getByField(ctx context.Context, field, value string) (*entities.Business, error) {
	query, args, err := a.db.Select(businessColumns...).
		From(businessesTable).
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	business, err := scanBusiness(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("business with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get business", err)
	}

	return business, nil
}

// SlugExists reports whether a slug is already taken
func (a *BusinessAdapter) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(businessesTable).
		Where(goqu.Ex{"slug": slug}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build slug query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check slug", err)
	}

	return count > 0, nil
}

// Update updates a business
func (a *BusinessAdapter) Update(ctx context.Context, business *entities.Business) error {
	business.UpdatedAt = time.Now()

	record := businessRecord(business, false)
	query, args, err := a.db.Update(businessesTable).
		Set(record).
		Where(goqu.Ex{"id": business.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update business", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("business with id %s not found", business.ID))
}

// List retrieves businesses matching the filter. Premium listings sort
// first; within each tier, newest first.
func (a *BusinessAdapter) List(ctx context.Context, filter repositories.BusinessFilter) ([]*entities.Business, error) {
	ds := a.db.Select(businessColumns...).From(businessesTable)

	if filter.ApprovedOnly {
		ds = ds.Where(goqu.Ex{"is_approved": true})
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"city": filter.City})
	}

	ds = ds.Order(goqu.I("is_premium").Desc(), goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to list businesses", err)
	}
	defer rows.Close()

	return collectBusinesses(rows)
}

// ListByOwner retrieves all businesses owned by a user
func (a *BusinessAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Business, error) {
	query, args, err := a.db.Select(businessColumns...).
		From(businessesTable).
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build owner query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to list owner businesses", err)
	}
	defer rows.Close()

	return collectBusinesses(rows)
}

// ListPending retrieves businesses awaiting moderation, oldest first
func (a *BusinessAdapter) ListPending(ctx context.Context) ([]*entities.Business, error) {
	query, args, err := a.db.Select(businessColumns...).
		From(businessesTable).
		Where(goqu.Ex{"is_approved": false}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build pending query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to list pending businesses", err)
	}
	defer rows.Close()

	return collectBusinesses(rows)
}

// SetApproval flips the moderation flag on a business. Approving an
// already approved business is a no-op at the row level, which keeps
// concurrent admin approvals idempotent.
func (a *BusinessAdapter) SetApproval(ctx context.Context, id string, approved bool) error {
	query, args, err := a.db.Update(businessesTable).
		Set(goqu.Record{
			"is_approved": approved,
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build approval query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update approval", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("business with id %s not found", id))
}

// Delete removes a business permanently (moderation reject)
func (a *BusinessAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete(businessesTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete business", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("business with id %s not found", id))
}

// IncrementViews bumps the profile view counter
func (a *BusinessAdapter) IncrementViews(ctx context.Context, id string) error {
	return a.incrementCounter(ctx, id, "views")
}

// IncrementClicks bumps the contact click counter
func (a *BusinessAdapter) IncrementClicks(ctx context.Context, id string) error {
	return a.incrementCounter(ctx, id, "clicks")
}

func (a *BusinessAdapter) incrementCounter(ctx context.Context, id, column string) error {
	query, args, err := a.db.Update(businessesTable).
		Set(goqu.Record{column: goqu.L(column + " + 1")}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build counter query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to increment "+column, err)
	}

	return requireRowsAffected(result, fmt.Sprintf("business with id %s not found", id))
}

// SetPremiumByOwner marks every business of an owner as premium
func (a *BusinessAdapter) SetPremiumByOwner(ctx context.Context, ownerID string, premium bool) error {
	query, args, err := a.db.Update(businessesTable).
		Set(goqu.Record{
			"is_premium": premium,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"owner_id": ownerID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build premium query", err)
	}

	// Owners without a business yet are fine; the flag applies when
	// they register one, via the owner role.
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to set premium flag", err)
	}

	return nil
}

// UpdateRating refreshes the denormalized review aggregate
func (a *BusinessAdapter) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	query, args, err := a.db.Update(businessesTable).
		Set(goqu.Record{
			"rating_avg":   avg,
			"rating_count": count,
			"updated_at":   time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rating query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update rating", err)
	}

	return requireRowsAffected(result, fmt.Sprintf("business with id %s not found", id))
}

func businessRecord(b *entities.Business, withIdentity bool) goqu.Record {
	record := goqu.Record{
		"name":                b.Name,
		"slug":                b.Slug,
		"category":            b.Category,
		"city":                b.City,
		"description":         b.Description,
		"long_description":    nullString(b.LongDescription),
		"address":             b.Address,
		"lat":                 nullFloat(b.Lat),
		"lng":                 nullFloat(b.Lng),
		"phone":               b.Phone,
		"whatsapp":            nullString(b.WhatsApp),
		"website":             nullString(b.Website),
		"instagram":           nullString(b.Instagram),
		"facebook":            nullString(b.Facebook),
		"email":               nullString(b.Email),
		"logo_url":            nullString(b.LogoURL),
		"images":              pq.Array(b.Images),
		"video_url":           nullString(b.VideoURL),
		"schedule":            nullString(b.Schedule),
		"is_premium":          b.IsPremium,
		"is_approved":         b.IsApproved,
		"is_featured":         b.IsFeatured,
		"subscription_expiry": nullTime(b.SubscriptionExpiry),
		"views":               b.Views,
		"clicks":              b.Clicks,
		"rating_avg":          b.RatingAvg,
		"rating_count":        b.RatingCount,
		"updated_at":          b.UpdatedAt,
	}

	if withIdentity {
		record["id"] = b.ID
		record["owner_id"] = b.OwnerID
		record["created_at"] = b.CreatedAt
	}

	return record
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*entities.Business, error) {
	b := &entities.Business{}
	var (
		longDescription, whatsapp, website, instagram sql.NullString
		facebook, email, logoURL, videoURL, schedule  sql.NullString
		lat, lng                                      sql.NullFloat64
		subscriptionExpiry                            sql.NullTime
	)

	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Slug, &b.Category, &b.City,
		&b.Description, &longDescription, &b.Address, &lat, &lng,
		&b.Phone, &whatsapp, &website, &instagram, &facebook, &email,
		&logoURL, pq.Array(&b.Images), &videoURL, &schedule,
		&b.IsPremium, &b.IsApproved, &b.IsFeatured, &subscriptionExpiry,
		&b.Views, &b.Clicks, &b.RatingAvg, &b.RatingCount,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.LongDescription = longDescription.String
	b.WhatsApp = whatsapp.String
	b.Website = website.String
	b.Instagram = instagram.String
	b.Facebook = facebook.String
	b.Email = email.String
	b.LogoURL = logoURL.String
	b.VideoURL = videoURL.String
	b.Schedule = schedule.String
	if lat.Valid {
		b.Lat = &lat.Float64
	}
	if lng.Valid {
		b.Lng = &lng.Float64
	}
	if subscriptionExpiry.Valid {
		t := subscriptionExpiry.Time
		b.SubscriptionExpiry = &t
	}

	return b, nil
}

func collectBusinesses(rows *sql.Rows) ([]*entities.Business, error) {
	businesses := []*entities.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan business", err)
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating businesses", err)
	}

	return businesses, nil
}

func requireRowsAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}
	return pqErr.Code == "23505" && (constraint == "" || pqErr.Constraint == constraint)
}
