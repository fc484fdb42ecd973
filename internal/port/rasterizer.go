package port

import (
	"context"

	"billex/internal/domain"
)

// Rasterizer turns raw document bytes into an ordered sequence of page
// images, using the source hint (URL or filename) only to guess the
// encoding. On success the result is never empty.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte, sourceHint string) ([]domain.PageImage, error)
}
