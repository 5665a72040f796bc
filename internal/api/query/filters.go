package query

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterState is the canonical listing filter set. The URL query string
// is the single source of truth for it: parsing then encoding the same
// values is stable, so shared links reproduce the exact view.
type FilterState struct {
	Search   string
	Category string
	City     string
	Page     int
}

// Query parameter names
const (
	ParamSearch   = "q"
	ParamCategory = "categoria"
	ParamCity     = "ciudad"
	ParamPage     = "page"
)

// Parse builds a FilterState from URL query values. Empty parameters
// and the explicit default city collapse to the zero value so that
// equivalent URLs produce equal states.
func Parse(values url.Values, defaultCity string) FilterState {
	state := FilterState{
		Search:   strings.TrimSpace(values.Get(ParamSearch)),
		Category: strings.TrimSpace(values.Get(ParamCategory)),
		City:     strings.TrimSpace(values.Get(ParamCity)),
		Page:     1,
	}

	if state.City == "" {
		state.City = defaultCity
	}

	if raw := values.Get(ParamPage); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			state.Page = page
		}
	}

	return state
}

// Encode renders the state back into query values. Fields holding the
// default are omitted, keeping URLs minimal and stable.
func (s FilterState) Encode(defaultCity string) url.Values {
	values := url.Values{}

	if s.Search != "" {
		values.Set(ParamSearch, s.Search)
	}
	if s.Category != "" {
		values.Set(ParamCategory, s.Category)
	}
	if s.City != "" && s.City != defaultCity {
		values.Set(ParamCity, s.City)
	}
	if s.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(s.Page))
	}

	return values
}

// WithFilter returns a copy of the state with one filter changed.
// Setting a filter resets pagination; clearing one drops it from the
// encoded URL entirely.
func (s FilterState) WithFilter(param, value string) FilterState {
	next := s
	next.Page = 1

	switch param {
	case ParamSearch:
		next.Search = strings.TrimSpace(value)
	case ParamCategory:
		next.Category = strings.TrimSpace(value)
	case ParamCity:
		next.City = strings.TrimSpace(value)
	}

	return next
}

// IsZero reports whether no filter beyond the defaults is active
func (s FilterState) IsZero(defaultCity string) bool {
	return s.Search == "" && s.Category == "" &&
		(s.City == "" || s.City == defaultCity) && s.Page <= 1
}
