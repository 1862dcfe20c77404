package usecase

import (
	"context"
	"estate-agent-service/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

// mapKV - простое хранилище в памяти для тестов.
type mapKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapKV() *mapKV { return &mapKV{data: map[string]string{}} }

func (m *mapKV) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Read(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKV) Write(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) All(ctx context.Context) []domain.Listing {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Listing)
}

func (m *MockCatalog) FindByID(ctx context.Context, id int) (domain.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Listing), args.Error(1)
}

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) PublishFavouritesChanged(ctx context.Context, change domain.FavouritesChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func testListing(id int) domain.Listing {
	return domain.Listing{
		ID:        id,
		Type:      domain.ListingTypeHouse,
		Price:     float64(100000 * id),
		Bedrooms:  id,
		DateAdded: "2024-01-01",
		Postcode:  "SW1A 1AA",
	}
}

func listingIDs(items []domain.Listing) []int {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
