package rest

import (
	"context"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockSearchUC struct{ mock.Mock }

func (m *MockSearchUC) Execute(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockDetailsUC struct{ mock.Mock }

func (m *MockDetailsUC) Execute(ctx context.Context, id int) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockOptionsUC struct{ mock.Mock }

func (m *MockOptionsUC) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

type MockListUC struct{ mock.Mock }

func (m *MockListUC) Execute(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockIDBoolUC struct{ mock.Mock }

func (m *MockIDBoolUC) Execute(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAddUC struct{ mock.Mock }

func (m *MockAddUC) Execute(ctx context.Context, id int) ([]domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockDropUC struct{ mock.Mock }

func (m *MockDropUC) Execute(ctx context.Context, payload []byte) ([]domain.Listing, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockIDErrUC struct{ mock.Mock }

func (m *MockIDErrUC) Execute(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockErrUC struct{ mock.Mock }

func (m *MockErrUC) Execute(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)                 {}
func (noopLogger) Warn(string, port.Fields)                 {}
func (noopLogger) Error(string, error, port.Fields)         {}
func (noopLogger) Debug(string, port.Fields)                {}
func (l noopLogger) WithFields(port.Fields) port.LoggerPort { return l }
