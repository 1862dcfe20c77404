package usecases_port

import (
	"context"
	"estate-agent-service/internal/core/domain"
)

type GetFilterOptionsUseCasePort interface {
	Execute(ctx context.Context) (*domain.FilterOptions, error)
}
