package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"sort"
)

// GetFilterOptionsUseCase собирает значения для формы поиска по текущему каталогу.
type GetFilterOptionsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetFilterOptionsUseCase(catalog port.ListingCatalogPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{catalog: catalog}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetFilterOptions"})

	all := uc.catalog.All(ctx)

	options := &domain.FilterOptions{
		Types:          append([]domain.ListingType(nil), domain.AllListingTypes...),
		Postcodes:      []string{},
		PriceSteps:     append([]float64(nil), domain.PriceSteps...),
		BedroomsSlider: domain.IntRange{Min: domain.BedroomsSliderMin, Max: domain.BedroomsSliderMax},
		Count:          len(all),
	}

	seen := make(map[string]struct{})
	for i, l := range all {
		if _, ok := seen[l.Postcode]; !ok && l.Postcode != "" {
			seen[l.Postcode] = struct{}{}
			options.Postcodes = append(options.Postcodes, l.Postcode)
		}

		if i == 0 {
			options.PriceRange = domain.FloatRange{Min: l.Price, Max: l.Price}
			options.BedroomsRange = domain.IntRange{Min: l.Bedrooms, Max: l.Bedrooms}
			continue
		}
		options.PriceRange.Min = min(options.PriceRange.Min, l.Price)
		options.PriceRange.Max = max(options.PriceRange.Max, l.Price)
		options.BedroomsRange.Min = min(options.BedroomsRange.Min, l.Bedrooms)
		options.BedroomsRange.Max = max(options.BedroomsRange.Max, l.Bedrooms)
	}
	sort.Strings(options.Postcodes)

	ucLogger.Debug("Filter options collected", port.Fields{
		"postcodes": len(options.Postcodes),
		"count":     options.Count,
	})
	return options, nil
}
