package usecase

import (
	"context"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

type GetFavouritesUseCase struct {
	store *FavouritesStore
}

func NewGetFavouritesUseCase(store *FavouritesStore) *GetFavouritesUseCase {
	return &GetFavouritesUseCase{store: store}
}

func (uc *GetFavouritesUseCase) Execute(ctx context.Context) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	snapshot := uc.store.Snapshot()

	logger.Debug("Favourites snapshot taken", port.Fields{
		"use_case": "GetFavourites",
		"count":    len(snapshot),
	})
	return snapshot, nil
}

type CheckFavouriteUseCase struct {
	store *FavouritesStore
}

func NewCheckFavouriteUseCase(store *FavouritesStore) *CheckFavouriteUseCase {
	return &CheckFavouriteUseCase{store: store}
}

func (uc *CheckFavouriteUseCase) Execute(ctx context.Context, listingID int) (bool, error) {
	return uc.store.IsFavourite(listingID), nil
}
