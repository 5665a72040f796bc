package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/directoriodominicano/backend/internal/api/handlers"
	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/directoriodominicano/backend/tests/mocks"
)

func newDirectoryHandler(t *testing.T) (*handlers.DirectoryHandler, *mocks.MockBusinessRepository) {
	t.Helper()

	repo := mocks.NewMockBusinessRepository(t)
	directory := services.NewDirectoryService(repo, nil, nil, 30)
	business := services.NewBusinessService(repo, nil, nil)
	return handlers.NewDirectoryHandler(directory, business, "Barcelona"), repo
}

func TestDirectoryHandler_ListBusinesses(t *testing.T) {
	t.Run("applies the default city and echoes the filters", func(t *testing.T) {
		handler, repo := newDirectoryHandler(t)

		repo.On("List", mock.Anything, repositories.BusinessFilter{
			City:         "Barcelona",
			ApprovedOnly: true,
			Limit:        30,
		}).Return([]*entities.Business{{ID: "1", Name: "El Criollo"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
		rec := httptest.NewRecorder()

		handler.ListBusinesses(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Count    int               `json:"count"`
			Fallback bool              `json:"fallback"`
			Filters  map[string]string `json:"filters"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.False(t, body.Fallback)
		assert.Equal(t, "Barcelona", body.Filters["city"])
	})

	t.Run("serves the fallback listing with 200 when the store is down", func(t *testing.T) {
		handler, repo := newDirectoryHandler(t)

		repo.On("List", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewUnavailableError("connection refused", assert.AnError))

		req := httptest.NewRequest(http.MethodGet, "/api/businesses?categoria=restaurantes", nil)
		rec := httptest.NewRecorder()

		handler.ListBusinesses(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Count    int  `json:"count"`
			Fallback bool `json:"fallback"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Fallback)
		assert.Equal(t, 1, body.Count)
	})
}

func TestDirectoryHandler_GetBusiness(t *testing.T) {
	t.Run("returns the profile for a known slug", func(t *testing.T) {
		handler, repo := newDirectoryHandler(t)

		repo.On("GetBySlug", mock.Anything, "colmado-la-bendicion").
			Return(&entities.Business{ID: "2", Slug: "colmado-la-bendicion", IsApproved: true}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/businesses/colmado-la-bendicion", nil)
		req.SetPathValue("slug", "colmado-la-bendicion")
		rec := httptest.NewRecorder()

		handler.GetBusiness(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("404 for unknown slugs", func(t *testing.T) {
		handler, repo := newDirectoryHandler(t)

		repo.On("GetBySlug", mock.Anything, "nadie").
			Return(nil, apperrors.NewNotFoundError("business nadie not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/businesses/nadie", nil)
		req.SetPathValue("slug", "nadie")
		rec := httptest.NewRecorder()

		handler.GetBusiness(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDirectoryHandler_Counters(t *testing.T) {
	handler, repo := newDirectoryHandler(t)

	repo.On("IncrementViews", mock.Anything, "biz-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/businesses/biz-1/view", nil)
	req.SetPathValue("id", "biz-1")
	rec := httptest.NewRecorder()

	handler.RecordView(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
