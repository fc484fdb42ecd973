package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	"image/jpeg"   // Register JPEG decoder, used for re-encoding
	_ "image/png"  // Register PNG decoder

	"github.com/gen2brain/heic"

	"billex/internal/domain"
)

// imageDecoder decodes the bytes as a single image and re-encodes it as
// one JPEG page. Re-encoding through image/jpeg also flattens everything
// to a plain 3-channel raster.
func imageDecoder(quality int) DecodeFunc {
	return func(ctx context.Context, data []byte) ([]domain.PageImage, error) {
		var img image.Image
		var err error

		// HEIC/HEIF photos (common from phone cameras) are not handled by
		// the standard image package.
		if isHEIC(data) {
			img, err = heic.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decoding HEIC image: %w", err)
			}
		} else {
			img, _, err = image.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decoding image: %w", err)
			}
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encoding JPEG: %w", err)
		}

		bounds := img.Bounds()
		return []domain.PageImage{{
			PageNo: 1,
			MIME:   "image/jpeg",
			Data:   buf.Bytes(),
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		}}, nil
	}
}

// isHEIC checks the ftyp box brands that mark HEIC/HEIF containers.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}
