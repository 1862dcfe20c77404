package port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

// FavouritesEventsPort - исходящий порт для уведомлений об изменении избранного.
type FavouritesEventsPort interface {
	PublishFavouritesChanged(ctx context.Context, change domain.FavouritesChange) error
}
