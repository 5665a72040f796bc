package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

const defaultCity = "Barcelona"

func TestParse(t *testing.T) {
	t.Run("applies the default city when absent", func(t *testing.T) {
		state := Parse(url.Values{}, defaultCity)

		assert.Equal(t, "Barcelona", state.City)
		assert.Equal(t, 1, state.Page)
	})

	t.Run("reads every parameter", func(t *testing.T) {
		values := url.Values{
			"q":         {"pica pollo"},
			"categoria": {"restaurantes"},
			"ciudad":    {"Madrid"},
			"page":      {"3"},
		}

		state := Parse(values, defaultCity)

		assert.Equal(t, "pica pollo", state.Search)
		assert.Equal(t, "restaurantes", state.Category)
		assert.Equal(t, "Madrid", state.City)
		assert.Equal(t, 3, state.Page)
	})

	t.Run("ignores malformed page numbers", func(t *testing.T) {
		state := Parse(url.Values{"page": {"abc"}}, defaultCity)
		assert.Equal(t, 1, state.Page)

		state = Parse(url.Values{"page": {"-2"}}, defaultCity)
		assert.Equal(t, 1, state.Page)
	})
}

func TestEncode(t *testing.T) {
	t.Run("omits defaults so equivalent states share a URL", func(t *testing.T) {
		state := FilterState{City: "Barcelona", Page: 1}

		assert.Empty(t, state.Encode(defaultCity).Encode())
	})

	t.Run("round trip is stable", func(t *testing.T) {
		values := url.Values{
			"q":         {"colmado"},
			"categoria": {"colmados"},
			"ciudad":    {"Valencia"},
			"page":      {"2"},
		}

		state := Parse(values, defaultCity)
		encoded := state.Encode(defaultCity)
		reparsed := Parse(encoded, defaultCity)

		assert.Equal(t, state, reparsed)
		assert.Equal(t, encoded.Encode(), reparsed.Encode(defaultCity).Encode())
	})
}

func TestWithFilter(t *testing.T) {
	t.Run("changing a filter resets pagination", func(t *testing.T) {
		state := FilterState{Category: "colmados", City: "Barcelona", Page: 4}

		next := state.WithFilter(ParamCategory, "belleza")

		assert.Equal(t, "belleza", next.Category)
		assert.Equal(t, 1, next.Page)
	})

	t.Run("clearing a filter drops it from the URL", func(t *testing.T) {
		state := FilterState{Search: "pica pollo", City: "Barcelona"}

		next := state.WithFilter(ParamSearch, "")

		assert.Empty(t, next.Search)
		assert.NotContains(t, next.Encode(defaultCity).Encode(), "q=")
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		state := FilterState{Category: "colmados"}

		_ = state.WithFilter(ParamCategory, "ropa")

		assert.Equal(t, "colmados", state.Category)
	})
}

func TestIsZero(t *testing.T) {
	assert.True(t, FilterState{City: "Barcelona", Page: 1}.IsZero(defaultCity))
	assert.False(t, FilterState{Search: "x", City: "Barcelona"}.IsZero(defaultCity))
	assert.False(t, FilterState{City: "Madrid"}.IsZero(defaultCity))
}
