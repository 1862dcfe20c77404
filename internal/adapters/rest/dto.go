package rest

import (
	"estate-agent-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 7

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SearchCriteriaRequest - тело POST /listings/search. Отсутствующее поле = нет ограничения.
type SearchCriteriaRequest struct {
	Type        string   `json:"type"`
	MinPrice    *float64 `json:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice"`
	MinBedrooms *int     `json:"minBedrooms"`
	MaxBedrooms *int     `json:"maxBedrooms"`
	DateAdded   string   `json:"dateAdded"`
	Postcode    string   `json:"postcode"`
}

func (r SearchCriteriaRequest) toDomain() domain.SearchCriteria {
	return domain.SearchCriteria{
		Type:        domain.ListingType(r.Type),
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		MinBedrooms: r.MinBedrooms,
		MaxBedrooms: r.MaxBedrooms,
		DateAdded:   r.DateAdded,
		Postcode:    r.Postcode,
	}
}

type AddFavouriteRequest struct {
	ListingID *int `json:"listing_id"`
}

type ListingsResponse struct {
	Data  []domain.Listing `json:"data"`
	Total int              `json:"total"`
}

func newListingsResponse(listings []domain.Listing) ListingsResponse {
	if listings == nil {
		listings = []domain.Listing{}
	}
	return ListingsResponse{Data: listings, Total: len(listings)}
}

// ListingDetailsResponse - объект плюс geohash для вкладки с картой.
type ListingDetailsResponse struct {
	domain.Listing
	Geohash string `json:"geohash"`
}

func newListingDetailsResponse(l domain.Listing) ListingDetailsResponse {
	return ListingDetailsResponse{
		Listing: l,
		Geohash: geohash.EncodeWithPrecision(l.Latitude, l.Longitude, geohashPrecision),
	}
}

type FavouriteStatusResponse struct {
	ListingID   int  `json:"listing_id"`
	IsFavourite bool `json:"is_favourite"`
}

type RangeResponse[T int | float64] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

type FilterOptionsResponse struct {
	Types          []domain.ListingType   `json:"types"`
	Postcodes      []string               `json:"postcodes"`
	PriceSteps     []float64              `json:"priceSteps"`
	BedroomsSlider RangeResponse[int]     `json:"bedroomsSlider"`
	PriceRange     RangeResponse[float64] `json:"priceRange"`
	BedroomsRange  RangeResponse[int]     `json:"bedroomsRange"`
	Count          int                    `json:"count"`
}

func newFilterOptionsResponse(o *domain.FilterOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Types:          o.Types,
		Postcodes:      o.Postcodes,
		PriceSteps:     o.PriceSteps,
		BedroomsSlider: RangeResponse[int]{Min: o.BedroomsSlider.Min, Max: o.BedroomsSlider.Max},
		PriceRange:     RangeResponse[float64]{Min: o.PriceRange.Min, Max: o.PriceRange.Max},
		BedroomsRange:  RangeResponse[int]{Min: o.BedroomsRange.Min, Max: o.BedroomsRange.Max},
		Count:          o.Count,
	}
}
