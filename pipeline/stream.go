package pipeline

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/visionward/camview/frame"
	"github.com/visionward/camview/transport"
	"github.com/visionward/camview/video"
)

// DefaultTakeTimeout bounds the decode worker's wait on the raw slot so
// it re-checks the shutdown signal while the stream is idle.
const DefaultTakeTimeout = 500 * time.Millisecond

// Config describes one stream's pipeline.
type Config struct {
	// Name identifies the stream.
	Name string

	// BindAddr is the local address to bind. Empty means all interfaces.
	BindAddr string

	// Port is the stream's UDP port.
	Port int

	// ReadBufferSize is the requested socket receive buffer in bytes.
	ReadBufferSize int

	// ReadTimeout bounds the listener's blocking reads.
	ReadTimeout time.Duration

	// TakeTimeout bounds the decode worker's wait for a raw frame. Zero
	// selects DefaultTakeTimeout.
	TakeTimeout time.Duration
}

// Stream is one camera stream's complete receive pipeline: a listener
// feeding a reassembler, a raw-frame slot, a decode worker and a
// decoded-frame slot. Start launches two goroutines; Poll is the
// display-side, never-blocking read of the freshest decoded frame.
type Stream struct {
	name        string
	listener    *transport.Listener
	asm         *frame.Assembler
	raw         *frame.Slot[rawFrame]
	decoded     *frame.Slot[*video.Frame]
	decoder     video.Decoder
	takeTimeout time.Duration
	stats       Stats
	log         *logrus.Entry
	wg          sync.WaitGroup
	seq         uint64
}

// rawFrame carries a completed compressed frame and its completion time
// across the raw slot.
type rawFrame struct {
	data       []byte
	receivedAt time.Time
}

// New binds the stream's socket and assembles its pipeline. A bind
// failure is returned and is fatal for this stream only; the caller
// decides whether the process can run with the remaining streams.
func New(cfg Config, decoder video.Decoder) (*Stream, error) {
	s := &Stream{
		name:        cfg.Name,
		raw:         frame.NewSlot[rawFrame](),
		decoded:     frame.NewSlot[*video.Frame](),
		decoder:     decoder,
		takeTimeout: cfg.TakeTimeout,
		log: logrus.WithFields(logrus.Fields{
			"component": "pipeline",
			"stream":    cfg.Name,
		}),
	}
	if s.takeTimeout <= 0 {
		s.takeTimeout = DefaultTakeTimeout
	}

	s.asm = frame.NewAssembler(s.publishFrame)

	listener, err := transport.Listen(transport.Config{
		Name:           cfg.Name,
		BindAddr:       cfg.BindAddr,
		Port:           cfg.Port,
		ReadBufferSize: cfg.ReadBufferSize,
		ReadTimeout:    cfg.ReadTimeout,
	}, s.handleDatagram, s.asm.Reset)
	if err != nil {
		return nil, err
	}
	s.listener = listener

	return s, nil
}

// handleDatagram feeds one parsed datagram to the reassembler. Runs on
// the listener goroutine.
func (s *Stream) handleDatagram(final bool, payload []byte) {
	s.asm.Append(final, payload)
}

// publishFrame moves a completed compressed frame into the raw slot,
// replacing any frame the decode worker has not picked up yet.
func (s *Stream) publishFrame(data []byte) {
	s.stats.framesAssembled.Add(1)
	if s.raw.Put(rawFrame{data: data, receivedAt: time.Now()}) {
		s.stats.rawOverwritten.Add(1)
	}
}

// Start launches the listener and decode worker goroutines. Both exit
// within one bounded-wait cycle after ctx is cancelled.
func (s *Stream) Start(ctx context.Context) {
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.listener.Run(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.decodeLoop(ctx)
	}()
	s.log.Info("stream pipeline started")
}

// Wait blocks until both goroutines have exited.
func (s *Stream) Wait() {
	s.wg.Wait()
}

// decodeLoop pulls compressed frames from the raw slot and publishes
// decode successes to the decoded slot. Decode failures are the expected
// shape of packet loss: log at debug, count, move on. A failed frame is
// never retried, its bytes are already stale.
func (s *Stream) decodeLoop(ctx context.Context) {
	defer s.log.Info("decode worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, ok := s.raw.Take(s.takeTimeout)
		if !ok {
			continue
		}

		img, err := s.decoder.Decode(raw.data)
		if err != nil {
			s.stats.decodeFailures.Add(1)
			s.log.WithError(err).Debug("frame decode failed")
			continue
		}

		s.seq++
		bounds := img.Bounds()
		f := &video.Frame{
			Stream:     s.name,
			Image:      img,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
			Sequence:   s.seq,
			ReceivedAt: raw.receivedAt,
		}

		s.stats.framesDecoded.Add(1)
		if s.decoded.Put(f) {
			s.stats.decodedOverwritten.Add(1)
		}
	}
}

// Poll returns the freshest decoded frame if one is pending. It never
// blocks; the display loop calls it every tick.
func (s *Stream) Poll() (*video.Frame, bool) {
	return s.decoded.TryTake()
}

// LocalAddr returns the listener's bound address, useful when Port 0 was
// requested.
func (s *Stream) LocalAddr() net.Addr {
	return s.listener.LocalAddr()
}

// Name returns the stream's configured name.
func (s *Stream) Name() string {
	return s.name
}

// Stats returns a point-in-time copy of the stream's counters.
func (s *Stream) Stats() StatsSnapshot {
	return StatsSnapshot{
		DatagramsReceived:  s.listener.Received(),
		DatagramsMalformed: s.listener.Malformed(),
		FramesAssembled:    s.stats.framesAssembled.Load(),
		FramesDecoded:      s.stats.framesDecoded.Load(),
		DecodeFailures:     s.stats.decodeFailures.Load(),
		RawOverwritten:     s.stats.rawOverwritten.Load(),
		DecodedOverwritten: s.stats.decodedOverwritten.Load(),
	}
}
