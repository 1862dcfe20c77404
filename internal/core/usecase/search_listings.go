package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

type SearchListingsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewSearchListingsUseCase(catalog port.ListingCatalogPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{catalog: catalog}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"criteria": criteria,
	})

	ucLogger.Debug("Use case started", nil)

	all := uc.catalog.All(ctx)
	result := domain.FilterListings(all, criteria)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalog_size": len(all),
		"total_found":  len(result),
	})
	return result, nil
}
