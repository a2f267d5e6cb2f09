package video

import (
	"image"
	"time"
)

// Frame is one decoded image delivered by a stream's pipeline.
type Frame struct {
	// Stream names the source stream, for example "top" or "bottom".
	Stream string

	// Image holds the decoded pixels.
	Image image.Image

	// Width and Height are the decoded dimensions in pixels.
	Width  int
	Height int

	// Sequence counts decoded frames per stream, starting at 1. Gaps do
	// not occur in the sequence itself, but a consumer polling the
	// decoded slot may observe gaps because only the newest frame is
	// retained.
	Sequence uint64

	// ReceivedAt is when the compressed frame completed reassembly.
	ReceivedAt time.Time
}
