package video

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// DefaultJPEGQuality matches the camera hosts' stream quality.
const DefaultJPEGQuality = 80

// JPEGEncoder produces the compressed frames the wire protocol carries.
// It backs the companion sender tool and the end-to-end tests.
type JPEGEncoder struct {
	quality int
}

// NewJPEGEncoder creates an encoder with the given quality (1-100).
// Out-of-range values fall back to DefaultJPEGQuality.
func NewJPEGEncoder(quality int) *JPEGEncoder {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &JPEGEncoder{quality: quality}
}

// Encode compresses img to JPEG bytes.
func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
