package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directoriodominicano/backend/internal/domain/repositories"
)

func TestSearchFilters(t *testing.T) {
	t.Run("no constraints keeps only the approval predicate", func(t *testing.T) {
		filterBy, ok := searchFilters(repositories.SearchParams{Query: "colmado"})

		require.True(t, ok)
		assert.Equal(t, "is_approved:=true", filterBy)
	})

	t.Run("canonicalizes category and city before they reach the expression", func(t *testing.T) {
		filterBy, ok := searchFilters(repositories.SearchParams{
			Category: "RESTAURANTES",
			City:     "barcelona",
		})

		require.True(t, ok)
		assert.Equal(t, "is_approved:=true && category:=restaurantes && city:=`Barcelona`", filterBy)
	})

	t.Run("filter grammar in a category value never reaches the expression", func(t *testing.T) {
		_, ok := searchFilters(repositories.SearchParams{
			Category: "restaurantes || is_premium:=true",
		})

		assert.False(t, ok)
	})

	t.Run("filter grammar in a city value never reaches the expression", func(t *testing.T) {
		_, ok := searchFilters(repositories.SearchParams{
			City: "Barcelona` || is_approved:=false || city:=`Barcelona",
		})

		assert.False(t, ok)
	})

	t.Run("unknown enumeration values are unsatisfiable", func(t *testing.T) {
		_, ok := searchFilters(repositories.SearchParams{Category: "criptomonedas"})
		assert.False(t, ok)

		_, ok = searchFilters(repositories.SearchParams{City: "París"})
		assert.False(t, ok)
	})
}

// An unsatisfiable filter returns zero matches without contacting the
// search cluster at all.
func TestSearch_UnsatisfiableFilterShortCircuits(t *testing.T) {
	adapter := NewTypesenseAdapter(nil)

	results, err := adapter.Search(context.Background(), repositories.SearchParams{
		Query:    "a",
		Category: "x || is_premium:=true",
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}
