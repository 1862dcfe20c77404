package usecase

import (
	"context"
	"testing"

	"estate-agent-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Type: domain.ListingTypeHouse, Price: 300000, Bedrooms: 3, Postcode: "SW1A 1AA", DateAdded: "2024-01-01"},
		{ID: 2, Type: domain.ListingTypeFlat, Price: 150000, Bedrooms: 1, Postcode: "NW1 6XE", DateAdded: "2024-02-01"},
		{ID: 3, Type: domain.ListingTypeFlat, Price: 425000, Bedrooms: 2, Postcode: "NW1 6XE", DateAdded: "2024-02-01"},
	}
}

func TestSearchListingsUseCase(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("All", mock.Anything).Return(catalogListings())

	uc := NewSearchListingsUseCase(catalog)
	result, err := uc.Execute(context.Background(), domain.SearchCriteria{Postcode: "nw1"})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, listingIDs(result))
}

func TestGetListingDetailsUseCase(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("FindByID", mock.Anything, 2).Return(catalogListings()[1], nil)
	catalog.On("FindByID", mock.Anything, 9).Return(domain.Listing{}, domain.ErrListingNotFound)

	uc := NewGetListingDetailsUseCase(catalog)

	listing, err := uc.Execute(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "NW1 6XE", listing.Postcode)

	listing, err = uc.Execute(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Nil(t, listing)
}

func TestGetFilterOptionsUseCase(t *testing.T) {
	t.Run("collects ranges", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("All", mock.Anything).Return(catalogListings())

		options, err := NewGetFilterOptionsUseCase(catalog).Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"NW1 6XE", "SW1A 1AA"}, options.Postcodes)
		assert.Equal(t, domain.FloatRange{Min: 150000, Max: 425000}, options.PriceRange)
		assert.Equal(t, domain.IntRange{Min: 1, Max: 3}, options.BedroomsRange)
		assert.Equal(t, domain.IntRange{Min: 0, Max: 10}, options.BedroomsSlider)
		assert.Equal(t, domain.AllListingTypes, options.Types)
		assert.Equal(t, 3, options.Count)
		assert.Len(t, options.PriceSteps, 13)
	})

	t.Run("empty catalog", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("All", mock.Anything).Return([]domain.Listing{})

		options, err := NewGetFilterOptionsUseCase(catalog).Execute(context.Background())

		require.NoError(t, err)
		assert.Empty(t, options.Postcodes)
		assert.Zero(t, options.Count)
		assert.Equal(t, domain.FloatRange{}, options.PriceRange)
	})
}
