package usecase

import (
	"context"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
)

// notifyFavouritesChanged публикует новый снимок избранного.
// Ошибка публикации только логируется: команда пользователя уже выполнена и сохранена.
func notifyFavouritesChanged(ctx context.Context, events port.FavouritesEventsPort, logger port.LoggerPort, change domain.FavouritesChange) {
	if events == nil {
		return
	}
	if err := events.PublishFavouritesChanged(ctx, change); err != nil {
		logger.Warn("Failed to publish favourites change", port.Fields{
			"action": string(change.Action),
			"error":  err.Error(),
		})
	}
}
