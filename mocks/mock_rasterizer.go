package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billex/internal/domain"
)

// MockRasterizer is a mock implementation of port.Rasterizer.
type MockRasterizer struct {
	mock.Mock
}

func (m *MockRasterizer) Rasterize(ctx context.Context, data []byte, sourceHint string) ([]domain.PageImage, error) {
	args := m.Called(ctx, data, sourceHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageImage), args.Error(1)
}
