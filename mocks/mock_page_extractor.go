package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billex/internal/domain"
)

// MockPageExtractor is a mock implementation of port.PageExtractor.
type MockPageExtractor struct {
	mock.Mock
}

func (m *MockPageExtractor) Extract(ctx context.Context, page domain.PageImage) (*domain.ParsedPageData, domain.TokenUsage, error) {
	args := m.Called(ctx, page)
	usage, _ := args.Get(1).(domain.TokenUsage)
	if args.Get(0) == nil {
		return nil, usage, args.Error(2)
	}
	return args.Get(0).(*domain.ParsedPageData), usage, args.Error(2)
}
