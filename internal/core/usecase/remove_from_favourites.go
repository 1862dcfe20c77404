package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

type RemoveFromFavouritesUseCase struct {
	store  *FavouritesStore
	events port.FavouritesEventsPort
}

func NewRemoveFromFavouritesUseCase(store *FavouritesStore, events port.FavouritesEventsPort) *RemoveFromFavouritesUseCase {
	return &RemoveFromFavouritesUseCase{store: store, events: events}
}

func (uc *RemoveFromFavouritesUseCase) Execute(ctx context.Context, listingID int) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RemoveFromFavourites",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	removed, snapshot, err := uc.store.Remove(ctx, listingID)
	if err != nil {
		ucLogger.Error("Favourites store returned an error", err, nil)
		return err
	}

	if removed {
		notifyFavouritesChanged(ctx, uc.events, ucLogger, domain.FavouritesChange{
			Action:    domain.FavouritesRemoved,
			ListingID: listingID,
			Snapshot:  snapshot,
		})
	} else {
		ucLogger.Warn("Attempted to remove a favourite that did not exist.", nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"removed": removed})
	return nil
}

type ClearFavouritesUseCase struct {
	store  *FavouritesStore
	events port.FavouritesEventsPort
}

func NewClearFavouritesUseCase(store *FavouritesStore, events port.FavouritesEventsPort) *ClearFavouritesUseCase {
	return &ClearFavouritesUseCase{store: store, events: events}
}

func (uc *ClearFavouritesUseCase) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ClearFavourites"})

	cleared, err := uc.store.Clear(ctx)
	if err != nil {
		ucLogger.Error("Favourites store returned an error", err, nil)
		return err
	}

	if cleared {
		notifyFavouritesChanged(ctx, uc.events, ucLogger, domain.FavouritesChange{
			Action:   domain.FavouritesCleared,
			Snapshot: []domain.Listing{},
		})
	} else {
		ucLogger.Debug("Favourites already empty", nil)
	}

	ucLogger.Info("Favourites cleared", port.Fields{"changed": cleared})
	return nil
}
