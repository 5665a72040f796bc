package database_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directoriodominicano/backend/internal/adapters/database"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

var businessRowColumns = []string{
	"id", "owner_id", "name", "slug", "category", "city",
	"description", "long_description", "address", "lat", "lng",
	"phone", "whatsapp", "website", "instagram", "facebook", "email",
	"logo_url", "images", "video_url", "schedule",
	"is_premium", "is_approved", "is_featured", "subscription_expiry",
	"views", "clicks", "rating_avg", "rating_count",
	"created_at", "updated_at",
}

func setupBusinessAdapter(t *testing.T) (repositories.BusinessRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewBusinessAdapter(postgres.NewClientFromDB(db)), mock
}

func businessRow(id, slug string) []driverValue {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []driverValue{
		id, "owner-1", "Colmado La Bendición", slug, "colmados", "Barcelona",
		"Productos dominicanos", nil, "Carrer de Sants 120", nil, nil,
		"+34600111222", nil, nil, nil, nil, nil,
		nil, "{}", nil, nil,
		false, true, false, nil,
		12, 3, 0.0, 0,
		now, now,
	}
}

type driverValue = driver.Value

func addRow(rows *sqlmock.Rows, values []driverValue) *sqlmock.Rows {
	return rows.AddRow(values...)
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func TestBusinessAdapter_GetBySlug(t *testing.T) {
	t.Run("returns the business when the slug exists", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		rows := sqlmock.NewRows(businessRowColumns)
		addRow(rows, businessRow("biz-1", "colmado-la-bendicion"))

		mock.ExpectQuery(`SELECT .+ FROM "businesses" WHERE \("slug" = 'colmado-la-bendicion'\)`).
			WillReturnRows(rows)

		business, err := adapter.GetBySlug(context.Background(), "colmado-la-bendicion")

		require.NoError(t, err)
		assert.Equal(t, "biz-1", business.ID)
		assert.Equal(t, "colmados", business.Category)
		assert.True(t, business.IsApproved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for an unknown slug", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
			WillReturnRows(sqlmock.NewRows(businessRowColumns))

		business, err := adapter.GetBySlug(context.Background(), "no-such-slug")

		require.Error(t, err)
		assert.Nil(t, business)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestBusinessAdapter_List(t *testing.T) {
	t.Run("orders premium first, then newest", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		rows := sqlmock.NewRows(businessRowColumns)
		addRow(rows, businessRow("biz-1", "colmado-la-bendicion"))
		addRow(rows, businessRow("biz-2", "otro-colmado"))

		mock.ExpectQuery(`SELECT .+ FROM "businesses" WHERE \(\("is_approved" IS TRUE\) AND \("category" = 'colmados'\)\) ORDER BY "is_premium" DESC, "created_at" DESC`).
			WillReturnRows(rows)

		businesses, err := adapter.List(context.Background(), repositories.BusinessFilter{
			Category:     "colmados",
			ApprovedOnly: true,
		})

		require.NoError(t, err)
		assert.Len(t, businesses, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
			WillReturnRows(sqlmock.NewRows(businessRowColumns))

		businesses, err := adapter.List(context.Background(), repositories.BusinessFilter{
			City:         "Valencia",
			ApprovedOnly: true,
		})

		require.NoError(t, err)
		assert.NotNil(t, businesses)
		assert.Empty(t, businesses)
	})

	t.Run("maps a query failure to unavailable", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "businesses"`).
			WillReturnError(assert.AnError)

		businesses, err := adapter.List(context.Background(), repositories.BusinessFilter{ApprovedOnly: true})

		require.Error(t, err)
		assert.Nil(t, businesses)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
	})
}

func TestBusinessAdapter_SlugExists(t *testing.T) {
	adapter, mock := setupBusinessAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "businesses" WHERE \("slug" = 'el-criollo'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := adapter.SlugExists(context.Background(), "el-criollo")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessAdapter_SetApproval(t *testing.T) {
	t.Run("approves an existing business", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		mock.ExpectExec(`UPDATE "businesses" SET .+"is_approved"=TRUE.+ WHERE \("id" = 'biz-1'\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.SetApproval(context.Background(), "biz-1", true)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when the row is missing", func(t *testing.T) {
		adapter, mock := setupBusinessAdapter(t)

		mock.ExpectExec(`UPDATE "businesses"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.SetApproval(context.Background(), "missing", true)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestBusinessAdapter_IncrementViews(t *testing.T) {
	adapter, mock := setupBusinessAdapter(t)

	mock.ExpectExec(`UPDATE "businesses" SET "views"=views \+ 1 WHERE \("id" = 'biz-1'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.IncrementViews(context.Background(), "biz-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessAdapter_SetPremiumByOwner(t *testing.T) {
	// Zero affected rows is fine here: an owner can subscribe before
	// registering their first business.
	adapter, mock := setupBusinessAdapter(t)

	mock.ExpectExec(`UPDATE "businesses" SET .+"is_premium"=TRUE.+ WHERE \("owner_id" = 'owner-9'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.SetPremiumByOwner(context.Background(), "owner-9", true)

	require.NoError(t, err)
}

func TestBusinessAdapter_Delete(t *testing.T) {
	adapter, mock := setupBusinessAdapter(t)

	mock.ExpectExec(`DELETE FROM "businesses" WHERE \("id" = 'biz-1'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Delete(context.Background(), "biz-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessAdapter_Create_DuplicateSlug(t *testing.T) {
	adapter, mock := setupBusinessAdapter(t)

	mock.ExpectExec(`INSERT INTO "businesses"`).
		WillReturnError(uniqueViolation("businesses_slug_key"))

	business := &entities.Business{
		ID:       "biz-3",
		OwnerID:  "owner-1",
		Name:     "El Criollo",
		Slug:     "el-criollo",
		Category: "restaurantes",
		City:     "Barcelona",
	}

	err := adapter.Create(context.Background(), business)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}
