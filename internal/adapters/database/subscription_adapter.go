package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

const subscriptionsTable = "subscriptions"

var subscriptionColumns = []interface{}{
	"id", "user_id", "provider_subscription_id", "plan", "status",
	"activated_at", "expires_at", "created_at",
}

// SubscriptionAdapter implements the SubscriptionRepository interface
type SubscriptionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSubscriptionAdapter creates a new subscription adapter
func NewSubscriptionAdapter(client *postgres.Client) repositories.SubscriptionRepository {
	return &SubscriptionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Activate persists a verified subscription and applies the premium
// upgrade in a single transaction: insert the subscription row, promote
// the owner's role, and flag their businesses as premium. Either all
// three land or none do.
func (a *SubscriptionAdapter) Activate(ctx context.Context, sub *entities.Subscription) error {
	insertSQL, insertArgs, err := a.db.Insert(subscriptionsTable).Rows(goqu.Record{
		"id":                       sub.ID,
		"user_id":                  sub.UserID,
		"provider_subscription_id": sub.ProviderSubscriptionID,
		"plan":                     sub.Plan,
		"status":                   sub.Status,
		"activated_at":             sub.ActivatedAt,
		"expires_at":               nullTime(sub.ExpiresAt),
		"created_at":               sub.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build subscription insert", err)
	}

	roleSQL, roleArgs, err := a.db.Update(usersTable).
		Set(goqu.Record{
			"role":       entities.RoleNegocioPremium,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": sub.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build role update", err)
	}

	premiumSQL, premiumArgs, err := a.db.Update(businessesTable).
		Set(goqu.Record{
			"is_premium":          true,
			"subscription_expiry": nullTime(sub.ExpiresAt),
			"updated_at":          time.Now(),
		}).
		Where(goqu.Ex{"owner_id": sub.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build premium update", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError(fmt.Sprintf("subscription %s already activated", sub.ProviderSubscriptionID))
		}
		return apperrors.NewInternalError("failed to insert subscription", err)
	}

	result, err := tx.ExecContext(ctx, roleSQL, roleArgs...)
	if err != nil {
		return apperrors.NewInternalError("failed to upgrade user role", err)
	}
	if err := requireRowsAffected(result, fmt.Sprintf("user with id %s not found", sub.UserID)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, premiumSQL, premiumArgs...); err != nil {
		return apperrors.NewInternalError("failed to flag businesses premium", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit activation", err)
	}

	return nil
}

// GetByUser retrieves the most recent subscription for a user
func (a *SubscriptionAdapter) GetByUser(ctx context.Context, userID string) (*entities.Subscription, error) {
	query, args, err := a.db.Select(subscriptionColumns...).
		From(subscriptionsTable).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	sub, err := a.scanRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no subscription for user %s", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get subscription", err)
	}

	return sub, nil
}

// GetByProviderID retrieves a subscription by the provider's id
func (a *SubscriptionAdapter) GetByProviderID(ctx context.Context, providerSubscriptionID string) (*entities.Subscription, error) {
	query, args, err := a.db.Select(subscriptionColumns...).
		From(subscriptionsTable).
		Where(goqu.Ex{"provider_subscription_id": providerSubscriptionID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	sub, err := a.scanRow(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("subscription %s not found", providerSubscriptionID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get subscription", err)
	}

	return sub, nil
}

func (a *SubscriptionAdapter) scanRow(row rowScanner) (*entities.Subscription, error) {
	sub := &entities.Subscription{}
	var expiresAt sql.NullTime

	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.ProviderSubscriptionID, &sub.Plan,
		&sub.Status, &sub.ActivatedAt, &expiresAt, &sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		sub.ExpiresAt = &t
	}

	return sub, nil
}
