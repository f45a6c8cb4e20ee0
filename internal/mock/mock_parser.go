package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coverage-analysis/pkg/model"
)

// MockParser is a mock implementation of the parser.Parser interface.
type MockParser struct {
	mock.Mock
}

// Parse mocks the Parse method.
func (m *MockParser) Parse(ctx context.Context, path string, db *model.CoverageDatabase) model.ResultCode {
	args := m.Called(ctx, path, db)
	return args.Get(0).(model.ResultCode)
}

// Stats mocks the Stats method.
func (m *MockParser) Stats() model.ParseStatistics {
	args := m.Called()
	return args.Get(0).(model.ParseStatistics)
}

// Format mocks the Format method.
func (m *MockParser) Format() model.ReportFormat {
	args := m.Called()
	return args.Get(0).(model.ReportFormat)
}

// ExpectParse sets up an expectation for Parse.
func (m *MockParser) ExpectParse(path string, code model.ResultCode) *mock.Call {
	return m.On("Parse", mock.Anything, path, mock.Anything).Return(code)
}
