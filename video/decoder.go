package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Formats a camera host may produce. JPEG is the primary stream
	// format; PNG and BMP register themselves for free.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// ErrEmptyFrame is returned when a zero-length compressed frame reaches
// the decoder. This happens when a frame's final fragment arrives with no
// accumulated payload and is handled as an ordinary decode failure.
var ErrEmptyFrame = errors.New("empty compressed frame")

// Decoder converts one complete compressed frame into an image.
//
// Implementations must tolerate arbitrary input: frames assembled from a
// lossy datagram stream are routinely truncated or contain fragments of
// two different frames. Such input yields an error, never a panic.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// ImageDecoder decodes any format registered with the standard image
// package. It is the default decode capability.
type ImageDecoder struct{}

// NewImageDecoder creates the default decoder.
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{}
}

// Decode parses data as a compressed image. The format is sniffed from
// the magic bytes, so a stream may switch formats between frames.
func (d *ImageDecoder) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame (%d bytes): %w", len(data), err)
	}

	return img, nil
}
