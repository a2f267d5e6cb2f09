package display

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/visionward/camview/video"
)

// FuncRenderer adapts a function to the Renderer interface.
type FuncRenderer func(stream string, f *video.Frame) error

// Display calls the wrapped function.
func (fn FuncRenderer) Display(stream string, f *video.Frame) error {
	return fn(stream, f)
}

// FileRenderer writes the latest frame per stream to <dir>/<stream>.jpg,
// giving a headless host a continuously refreshed still per camera. The
// write goes through a temp file and rename so an external viewer never
// reads a half-written image.
type FileRenderer struct {
	dir     string
	encoder *video.JPEGEncoder
	log     *logrus.Entry
}

// NewFileRenderer creates a renderer writing into dir, which is created
// if missing.
func NewFileRenderer(dir string, quality int) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame output dir: %w", err)
	}
	return &FileRenderer{
		dir:     dir,
		encoder: video.NewJPEGEncoder(quality),
		log:     logrus.WithField("component", "file_renderer"),
	}, nil
}

// Display encodes f and replaces the stream's output file.
func (r *FileRenderer) Display(stream string, f *video.Frame) error {
	data, err := r.encoder.Encode(f.Image)
	if err != nil {
		return err
	}

	final := filepath.Join(r.dir, stream+".jpg")
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"stream":   stream,
		"sequence": f.Sequence,
	}).Debug("frame written")
	return nil
}
