package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"fmt"
)

// AddToFavouritesUseCase - добавление по клику: объект берется из каталога по ID.
type AddToFavouritesUseCase struct {
	catalog port.ListingCatalogPort
	store   *FavouritesStore
	events  port.FavouritesEventsPort
}

func NewAddToFavouritesUseCase(catalog port.ListingCatalogPort, store *FavouritesStore, events port.FavouritesEventsPort) *AddToFavouritesUseCase {
	return &AddToFavouritesUseCase{catalog: catalog, store: store, events: events}
}

func (uc *AddToFavouritesUseCase) Execute(ctx context.Context, listingID int) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AddToFavourites",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.catalog.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	added, snapshot, err := uc.store.Add(ctx, listing)
	if err != nil {
		ucLogger.Error("Favourites store returned an error", err, nil)
		return nil, fmt.Errorf("failed to add listing %d to favourites: %w", listingID, err)
	}

	if added {
		notifyFavouritesChanged(ctx, uc.events, ucLogger, domain.FavouritesChange{
			Action:    domain.FavouritesAdded,
			ListingID: listingID,
			Snapshot:  snapshot,
		})
	} else {
		ucLogger.Debug("Listing already in favourites", nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"added": added, "count": len(snapshot)})
	return snapshot, nil
}
