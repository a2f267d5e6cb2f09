package display

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/visionward/camview/video"
)

// DefaultFrameRate is the display cadence in frames per second.
const DefaultFrameRate = 30

// Source is one stream's display-side surface: a name and a non-blocking
// poll for the freshest decoded frame. *pipeline.Stream satisfies it.
type Source interface {
	Name() string
	Poll() (*video.Frame, bool)
}

// Renderer presents decoded frames. Display is invoked only from the
// loop's goroutine, so implementations need no internal locking for
// loop-driven state. A Display error is logged and the loop moves on.
type Renderer interface {
	Display(stream string, f *video.Frame) error
}

// Loop polls a set of sources at a fixed cadence and forwards new frames
// to the renderer.
type Loop struct {
	interval time.Duration
	sources  []Source
	renderer Renderer
	log      *logrus.Entry
}

// NewLoop creates a display loop. frameRate <= 0 selects DefaultFrameRate.
func NewLoop(sources []Source, renderer Renderer, frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Loop{
		interval: time.Second / time.Duration(frameRate),
		sources:  sources,
		renderer: renderer,
		log: logrus.WithFields(logrus.Fields{
			"component":  "display",
			"frame_rate": frameRate,
		}),
	}
}

// Run ticks until ctx is cancelled. Each tick polls every source once;
// sources with nothing new are skipped. Run never blocks on a source, so
// the cadence holds even when every stream stalls.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info("display loop started")
	defer l.log.Info("display loop stopped")

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// tick drains at most one frame per source.
func (l *Loop) tick() {
	for _, src := range l.sources {
		f, ok := src.Poll()
		if !ok {
			continue
		}
		if err := l.renderer.Display(src.Name(), f); err != nil {
			l.log.WithError(err).WithField("stream", src.Name()).Warn("renderer error")
		}
	}
}
