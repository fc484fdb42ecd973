package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billex/internal/domain"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ExtractFromURL(ctx context.Context, rawURL string) (*domain.ExtractResult, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractResult), args.Error(1)
}

func (m *MockExtractService) ExtractFromBytes(ctx context.Context, data []byte, sourceHint string) (*domain.ExtractResult, error) {
	args := m.Called(ctx, data, sourceHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractResult), args.Error(1)
}
