package port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

// ListingCatalogPort - контракт для статического каталога объектов.
type ListingCatalogPort interface {
	// All возвращает копию всего каталога в исходном порядке.
	All(ctx context.Context) []domain.Listing
	// FindByID возвращает domain.ErrListingNotFound, если объекта нет.
	FindByID(ctx context.Context, id int) (domain.Listing, error)
}
