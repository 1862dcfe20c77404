package usecases_port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error)
}
