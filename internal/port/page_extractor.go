package port

import (
	"context"

	"billex/internal/domain"
)

// PageExtractor runs one model call for one page image and normalizes
// the response into typed line items plus token usage.
type PageExtractor interface {
	Extract(ctx context.Context, page domain.PageImage) (*domain.ParsedPageData, domain.TokenUsage, error)
}
