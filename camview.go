package camview

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/visionward/camview/config"
	"github.com/visionward/camview/display"
	"github.com/visionward/camview/pipeline"
	"github.com/visionward/camview/video"
)

// ErrNoStreams is returned by New when not a single configured stream
// could bind its socket.
var ErrNoStreams = errors.New("no stream could be started")

// Receiver owns the full receive side: one pipeline per configured
// stream plus the shared display loop.
type Receiver struct {
	cfg     *config.Config
	streams []*pipeline.Stream
	loop    *display.Loop
	log     *logrus.Entry
}

// New binds every configured stream and wires the display loop. A stream
// whose port cannot be bound is logged and skipped; the remaining streams
// run unaffected. New fails only when no stream at all could start, or
// when the configuration is invalid.
func New(cfg *config.Config, decoder video.Decoder, renderer display.Renderer) (*Receiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	log := logrus.WithField("component", "receiver")

	var streams []*pipeline.Stream
	var sources []display.Source
	for _, sc := range cfg.Streams {
		s, err := pipeline.New(pipeline.Config{
			Name:           sc.Name,
			BindAddr:       cfg.BindAddr,
			Port:           sc.Port,
			ReadBufferSize: cfg.Network.ReadBufferSize,
			ReadTimeout:    cfg.Network.ReadTimeout,
			TakeTimeout:    cfg.Network.TakeTimeout,
		}, decoder)
		if err != nil {
			log.WithError(err).WithField("stream", sc.Name).Error("stream failed to start")
			continue
		}
		streams = append(streams, s)
		sources = append(sources, s)
	}
	if len(streams) == 0 {
		return nil, ErrNoStreams
	}

	return &Receiver{
		cfg:     cfg,
		streams: streams,
		loop:    display.NewLoop(sources, renderer, cfg.Display.FrameRate),
		log:     log,
	}, nil
}

// Run starts every stream pipeline and drives the display loop on the
// calling goroutine until ctx is cancelled. It then waits for all
// listener and decode goroutines to exit before returning; each observes
// cancellation within one bounded-wait cycle.
func (r *Receiver) Run(ctx context.Context) {
	r.log.WithField("streams", len(r.streams)).Info("receiver starting")

	for _, s := range r.streams {
		s.Start(ctx)
	}

	r.loop.Run(ctx)

	for _, s := range r.streams {
		s.Wait()
	}
	r.log.Info("receiver stopped")
}

// Streams returns the running stream pipelines, for stats inspection.
func (r *Receiver) Streams() []*pipeline.Stream {
	return r.streams
}
