package raster

import (
	"context"
	"fmt"
	"log"
	"strings"

	"billex/internal/domain"
)

// DecodeFunc is one decoding strategy: it either produces the full page
// sequence for the document or fails, letting the next strategy run.
type DecodeFunc func(ctx context.Context, data []byte) ([]domain.PageImage, error)

type strategy struct {
	name   string
	decode DecodeFunc
}

// Rasterizer turns raw document bytes into ordered page images. The source
// hint only selects which decoder runs first; every input gets a fallback
// chain so a misleading hint still decodes.
// It implements port.Rasterizer.
type Rasterizer struct {
	pdf   strategy
	image strategy
}

// New creates a Rasterizer using MuPDF for PDFs and the standard image
// decoders (plus HEIC) for single images, rendering pages as JPEG with
// the given quality.
func New(jpegQuality int) *Rasterizer {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = defaultJPEGQuality
	}
	return &Rasterizer{
		pdf:   strategy{name: "pdf", decode: pdfDecoder(jpegQuality)},
		image: strategy{name: "image", decode: imageDecoder(jpegQuality)},
	}
}

// NewWithDecoders creates a Rasterizer with custom decode strategies (for testing).
func NewWithDecoders(pdf, image DecodeFunc) *Rasterizer {
	return &Rasterizer{
		pdf:   strategy{name: "pdf", decode: pdf},
		image: strategy{name: "image", decode: image},
	}
}

// Rasterize runs the strategy chain selected by the source hint and returns
// the pages from the first strategy that succeeds. All strategies exhausted
// means the document is undecodable and the whole request must fail.
func (r *Rasterizer) Rasterize(ctx context.Context, data []byte, sourceHint string) ([]domain.PageImage, error) {
	var lastErr error
	for _, s := range r.chainFor(sourceHint) {
		pages, err := s.decode(ctx, data)
		if err == nil {
			return pages, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("raster: %s decode failed for %q: %v", s.name, sourceHint, err)
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrDecodingFailed, lastErr)
}

// chainFor returns the ordered decoder list for a source hint. PDF-looking
// sources try PDF first then a direct image decode; everything else tries
// image, then PDF (the hint may be misleading), then image once more.
func (r *Rasterizer) chainFor(sourceHint string) []strategy {
	if strings.HasSuffix(strings.ToLower(sourceHint), ".pdf") {
		return []strategy{r.pdf, r.image}
	}
	return []strategy{r.image, r.pdf, r.image}
}
