package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"

	"billex/internal/domain"
)

const defaultJPEGQuality = 85

// pdfDecoder renders every page of a PDF document as a JPEG page image
// using MuPDF.
func pdfDecoder(quality int) DecodeFunc {
	return func(ctx context.Context, data []byte) ([]domain.PageImage, error) {
		doc, err := fitz.NewFromMemory(data)
		if err != nil {
			return nil, fmt.Errorf("opening PDF: %w", err)
		}
		defer func() { _ = doc.Close() }()

		pageCount := doc.NumPage()
		if pageCount == 0 {
			return nil, fmt.Errorf("PDF has no pages")
		}

		pages := make([]domain.PageImage, 0, pageCount)
		for n := 0; n < pageCount; n++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			img, err := doc.Image(n)
			if err != nil {
				return nil, fmt.Errorf("rendering PDF page %d: %w", n+1, err)
			}

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
				return nil, fmt.Errorf("encoding page %d as JPEG: %w", n+1, err)
			}

			bounds := img.Bounds()
			pages = append(pages, domain.PageImage{
				PageNo: n + 1,
				MIME:   "image/jpeg",
				Data:   buf.Bytes(),
				Width:  bounds.Dx(),
				Height: bounds.Dy(),
			})
		}
		return pages, nil
	}
}
