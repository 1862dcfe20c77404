package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

// ToggleFavouriteUseCase - кнопка "звездочка" на странице объекта.
type ToggleFavouriteUseCase struct {
	catalog port.ListingCatalogPort
	store   *FavouritesStore
	events  port.FavouritesEventsPort
}

func NewToggleFavouriteUseCase(catalog port.ListingCatalogPort, store *FavouritesStore, events port.FavouritesEventsPort) *ToggleFavouriteUseCase {
	return &ToggleFavouriteUseCase{catalog: catalog, store: store, events: events}
}

func (uc *ToggleFavouriteUseCase) Execute(ctx context.Context, listingID int) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ToggleFavourite",
		"listing_id": listingID,
	})

	listing, err := uc.catalog.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return false, err
	}

	isFavourite, snapshot, err := uc.store.Toggle(ctx, listing)
	if err != nil {
		ucLogger.Error("Favourites store returned an error", err, nil)
		return isFavourite, err
	}

	action := domain.FavouritesRemoved
	if isFavourite {
		action = domain.FavouritesAdded
	}
	notifyFavouritesChanged(ctx, uc.events, ucLogger, domain.FavouritesChange{
		Action:    action,
		ListingID: listingID,
		Snapshot:  snapshot,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"is_favourite": isFavourite})
	return isFavourite, nil
}
