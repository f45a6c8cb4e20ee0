package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coverage-analysis/pkg/model"
)

// MockRunRepository is a mock implementation of repository.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

// SaveRun mocks the SaveRun method.
func (m *MockRunRepository) SaveRun(ctx context.Context, run *model.ParseRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// GetRun mocks the GetRun method.
func (m *MockRunRepository) GetRun(ctx context.Context, id int64) (*model.ParseRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParseRun), args.Error(1)
}

// ListRecent mocks the ListRecent method.
func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ParseRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParseRun), args.Error(1)
}

// ListByReport mocks the ListByReport method.
func (m *MockRunRepository) ListByReport(ctx context.Context, reportPath string, limit int) ([]*model.ParseRun, error) {
	args := m.Called(ctx, reportPath, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParseRun), args.Error(1)
}

// ExpectSaveRun sets up an expectation for SaveRun.
func (m *MockRunRepository) ExpectSaveRun(err error) *mock.Call {
	return m.On("SaveRun", mock.Anything, mock.Anything).Return(err)
}
