package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate-agent-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	search  *MockSearchUC
	details *MockDetailsUC
	options *MockOptionsUC
	get     *MockListUC
	check   *MockIDBoolUC
	add     *MockAddUC
	drop    *MockDropUC
	remove  *MockIDErrUC
	clear   *MockErrUC
	toggle  *MockIDBoolUC
	router  http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		search:  new(MockSearchUC),
		details: new(MockDetailsUC),
		options: new(MockOptionsUC),
		get:     new(MockListUC),
		check:   new(MockIDBoolUC),
		add:     new(MockAddUC),
		drop:    new(MockDropUC),
		remove:  new(MockIDErrUC),
		clear:   new(MockErrUC),
		toggle:  new(MockIDBoolUC),
	}
	listings := NewListingsHandler(f.search, f.details, f.options)
	favourites := NewFavouritesHandler(f.get, f.check, f.add, f.drop, f.remove, f.clear, f.toggle)
	f.router = NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}}, listings, favourites, noopLogger{})
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

var westminster = domain.Listing{
	ID: 1, Type: domain.ListingTypeHouse, Price: 750000, Bedrooms: 3,
	DateAdded: "2024-10-15", Postcode: "SW1A 1AA", Latitude: 51.501, Longitude: -0.1416,
}

func TestSearchListings_QueryParams(t *testing.T) {
	f := newFixture()
	f.search.On("Execute", mock.Anything, mock.MatchedBy(func(c domain.SearchCriteria) bool {
		return c.Type == domain.ListingTypeHouse &&
			c.MinPrice != nil && *c.MinPrice == 200000 &&
			c.MaxPrice == nil && // "abc" не разбирается и игнорируется
			c.MinBedrooms != nil && *c.MinBedrooms == 2 &&
			c.MaxBedrooms == nil &&
			c.Postcode == "sw1a"
	})).Return([]domain.Listing{westminster}, nil)

	rr := f.do(http.MethodGet, "/api/v1/listings?type=house&minPrice=200000&maxPrice=abc&minBedrooms=2&postcode=sw1a", "")

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[ListingsResponse](t, rr)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Data[0].ID)
	f.search.AssertExpectations(t)
}

func TestSearchListings_EmptyResultIsArray(t *testing.T) {
	f := newFixture()
	f.search.On("Execute", mock.Anything, domain.SearchCriteria{}).Return(nil, nil)

	rr := f.do(http.MethodGet, "/api/v1/listings", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, rr.Body.String())
}

func TestSearchListingsByBody(t *testing.T) {
	f := newFixture()
	f.search.On("Execute", mock.Anything, mock.MatchedBy(func(c domain.SearchCriteria) bool {
		return c.Type == domain.ListingTypeFlat && c.MaxBedrooms != nil && *c.MaxBedrooms == 0
	})).Return([]domain.Listing{}, nil).Once()
	f.search.On("Execute", mock.Anything, domain.SearchCriteria{}).Return([]domain.Listing{westminster}, nil).Once()

	rr := f.do(http.MethodPost, "/api/v1/listings/search", `{"type":"flat","maxBedrooms":0}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(http.MethodPost, "/api/v1/listings/search", `{}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeBody[ListingsResponse](t, rr).Total)

	rr = f.do(http.MethodPost, "/api/v1/listings/search", `{"minPrice":"cheap"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	f.search.AssertExpectations(t)
}

func TestSearchListings_UseCaseError(t *testing.T) {
	f := newFixture()
	f.search.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rr := f.do(http.MethodGet, "/api/v1/listings", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to search listings"}`, rr.Body.String())
}

func TestGetListingDetails(t *testing.T) {
	f := newFixture()
	listing := westminster
	f.details.On("Execute", mock.Anything, 1).Return(&listing, nil)
	f.details.On("Execute", mock.Anything, 99).Return(nil, fmt.Errorf("listing 99: %w", domain.ErrListingNotFound))

	rr := f.do(http.MethodGet, "/api/v1/listings/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[map[string]interface{}](t, rr)
	assert.Equal(t, "SW1A 1AA", body["postcode"])
	hash, _ := body["geohash"].(string)
	assert.Len(t, hash, geohashPrecision)
	assert.True(t, strings.HasPrefix(hash, "gcpuu"), hash)

	rr = f.do(http.MethodGet, "/api/v1/listings/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(http.MethodGet, "/api/v1/listings/one", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetFilterOptions(t *testing.T) {
	f := newFixture()
	f.options.On("Execute", mock.Anything).Return(&domain.FilterOptions{
		Types:          domain.AllListingTypes,
		Postcodes:      []string{"E1 6AN"},
		PriceSteps:     []float64{0, 100000},
		BedroomsSlider: domain.IntRange{Min: 0, Max: 10},
		PriceRange:     domain.FloatRange{Min: 1, Max: 2},
		BedroomsRange:  domain.IntRange{Min: 1, Max: 1},
		Count:          1,
	}, nil)

	rr := f.do(http.MethodGet, "/api/v1/filters/options", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"types": ["house", "flat"],
		"postcodes": ["E1 6AN"],
		"priceSteps": [0, 100000],
		"bedroomsSlider": {"min": 0, "max": 10},
		"priceRange": {"min": 1, "max": 2},
		"bedroomsRange": {"min": 1, "max": 1},
		"count": 1
	}`, rr.Body.String())
}

func TestFavouritesEndpoints(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		f := newFixture()
		f.get.On("Execute", mock.Anything).Return([]domain.Listing{westminster}, nil)

		rr := f.do(http.MethodGet, "/api/v1/favourites", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, decodeBody[ListingsResponse](t, rr).Total)
	})

	t.Run("check", func(t *testing.T) {
		f := newFixture()
		f.check.On("Execute", mock.Anything, 1).Return(true, nil)

		rr := f.do(http.MethodGet, "/api/v1/favourites/1", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"listing_id":1,"is_favourite":true}`, rr.Body.String())
	})

	t.Run("add", func(t *testing.T) {
		f := newFixture()
		f.add.On("Execute", mock.Anything, 1).Return([]domain.Listing{westminster}, nil)
		f.add.On("Execute", mock.Anything, 42).Return(nil, domain.ErrListingNotFound)

		assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/favourites", `{"listing_id":1}`).Code)
		assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/v1/favourites", `{"listing_id":42}`).Code)
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/favourites", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/favourites", `{"listing_id":`).Code)
	})

	t.Run("drop", func(t *testing.T) {
		f := newFixture()
		good := `{"id":1}`
		f.drop.On("Execute", mock.Anything, []byte(good)).Return([]domain.Listing{westminster}, nil)
		f.drop.On("Execute", mock.Anything, []byte("garbage")).Return(nil, fmt.Errorf("%w: not json", domain.ErrInvalidPayload))

		assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/v1/favourites/drop", good).Code)
		rr := f.do(http.MethodPost, "/api/v1/favourites/drop", "garbage")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid listing payload")
	})

	t.Run("toggle", func(t *testing.T) {
		f := newFixture()
		f.toggle.On("Execute", mock.Anything, 1).Return(false, nil)

		rr := f.do(http.MethodPost, "/api/v1/favourites/1/toggle", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"listing_id":1,"is_favourite":false}`, rr.Body.String())
	})

	t.Run("remove and clear", func(t *testing.T) {
		f := newFixture()
		f.remove.On("Execute", mock.Anything, 1).Return(nil)
		f.remove.On("Execute", mock.Anything, 2).Return(errors.New("disk full"))
		f.clear.On("Execute", mock.Anything).Return(nil)

		assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/v1/favourites/1", "").Code)
		assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodDelete, "/api/v1/favourites/2", "").Code)
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodDelete, "/api/v1/favourites/x", "").Code)
		assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/v1/favourites", "").Code)
	})
}

func TestLoggerMiddleware_TraceID(t *testing.T) {
	f := newFixture()

	rr := f.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	generated := rr.Header().Get(TraceIDHeader)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(TraceIDHeader, "6f1c2f0e-8a5e-4d8e-9b6a-3c0f3f9b2a11")
	rr = httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	assert.Equal(t, "6f1c2f0e-8a5e-4d8e-9b6a-3c0f3f9b2a11", rr.Header().Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(TraceIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(TraceIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/favourites", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCriteriaFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?minPrice=NaN&maxPrice=1e400&minBedrooms=2.5&maxBedrooms=%204%20&dateAdded=2024-01-01", nil)
	c := criteriaFromQuery(req.URL.Query())

	assert.Nil(t, c.MinPrice)
	assert.Nil(t, c.MaxPrice)
	assert.Nil(t, c.MinBedrooms)
	require.NotNil(t, c.MaxBedrooms)
	assert.Equal(t, 4, *c.MaxBedrooms)
	assert.Equal(t, "2024-01-01", c.DateAdded)
	assert.Equal(t, domain.ListingType(""), c.Type)
}
