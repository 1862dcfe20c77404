package usecases_port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

type GetListingDetailsUseCasePort interface {
	Execute(ctx context.Context, listingID int) (*domain.Listing, error)
}
