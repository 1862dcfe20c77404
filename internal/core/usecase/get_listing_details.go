package usecase

import (
	"context"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetListingDetailsUseCase(catalog port.ListingCatalogPort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{catalog: catalog}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID int) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": listingID,
	})

	listing, err := uc.catalog.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Info("Listing not found", nil)
		} else {
			ucLogger.Error("Catalog lookup failed", err, nil)
		}
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return &listing, nil
}
