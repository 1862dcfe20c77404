package usecases_port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

type GetFavouritesUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Listing, error)
}

type CheckFavouriteUseCasePort interface {
	Execute(ctx context.Context, listingID int) (bool, error)
}

// AddToFavouritesUseCasePort - добавление по клику (объект берется из каталога).
type AddToFavouritesUseCasePort interface {
	Execute(ctx context.Context, listingID int) ([]domain.Listing, error)
}

// DropToFavouritesUseCasePort - добавление перетаскиванием (объект приходит целиком в теле).
type DropToFavouritesUseCasePort interface {
	Execute(ctx context.Context, payload []byte) ([]domain.Listing, error)
}

type RemoveFromFavouritesUseCasePort interface {
	Execute(ctx context.Context, listingID int) error
}

type ClearFavouritesUseCasePort interface {
	Execute(ctx context.Context) error
}

// ToggleFavouriteUseCasePort возвращает новое состояние: true, если объект теперь в избранном.
type ToggleFavouriteUseCasePort interface {
	Execute(ctx context.Context, listingID int) (bool, error)
}
