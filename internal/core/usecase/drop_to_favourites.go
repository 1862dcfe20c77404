package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/contracts"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"fmt"
)

// DropToFavouritesUseCase - добавление перетаскиванием карточки.
// Тело приходит от браузера и считается недоверенным: сначала разбор и валидация, потом Add.
type DropToFavouritesUseCase struct {
	store  *FavouritesStore
	events port.FavouritesEventsPort
}

func NewDropToFavouritesUseCase(store *FavouritesStore, events port.FavouritesEventsPort) *DropToFavouritesUseCase {
	return &DropToFavouritesUseCase{store: store, events: events}
}

func (uc *DropToFavouritesUseCase) Execute(ctx context.Context, payload []byte) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "DropToFavourites",
		"payload_size": len(payload),
	})

	listing, err := contracts.ParseListing(payload)
	if err != nil {
		// Состояние не меняется, оставляем диагностику для оператора
		ucLogger.Warn("Dropped payload rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"listing_id": listing.ID})
	ucLogger.Info("Use case started", nil)

	added, snapshot, err := uc.store.Add(ctx, listing)
	if err != nil {
		ucLogger.Error("Favourites store returned an error", err, nil)
		return nil, fmt.Errorf("failed to add dropped listing %d to favourites: %w", listing.ID, err)
	}

	if added {
		notifyFavouritesChanged(ctx, uc.events, ucLogger, domain.FavouritesChange{
			Action:    domain.FavouritesAdded,
			ListingID: listing.ID,
			Snapshot:  snapshot,
		})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"added": added, "count": len(snapshot)})
	return snapshot, nil
}
