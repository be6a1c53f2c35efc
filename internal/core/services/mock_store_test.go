package services_test

import (
	"context"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	"github.com/stretchr/testify/mock"
)

// MockStateStore is a mock type for the StateStoreFacade interface
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Snapshot(ctx context.Context) *domain.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Snapshot)
}

func (m *MockStateStore) Version(ctx context.Context) uint64 {
	args := m.Called(ctx)
	return args.Get(0).(uint64)
}

func (m *MockStateStore) Dispatch(ctx context.Context, op reducer.Operation) (*domain.Snapshot, domain.Result, error) {
	args := m.Called(ctx, op)
	var snap *domain.Snapshot
	if args.Get(0) != nil {
		snap = args.Get(0).(*domain.Snapshot)
	}
	return snap, args.Get(1).(domain.Result), args.Error(2)
}
